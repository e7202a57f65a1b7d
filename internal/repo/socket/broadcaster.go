package socket

import (
	"context"
	"encoding/json"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/usecase"
)

var _ usecase.CatalogBroadcaster = (*Broadcaster)(nil)

// Event is the frame pushed to viewers.
type Event struct {
	Event string           `json:"event"`
	Data  []models.Product `json:"data"`
}

type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// BroadcastProducts pushes the full catalog to all connected viewers.
// Encoding failures are logged and dropped; the mutation already committed.
func (b *Broadcaster) BroadcastProducts(ctx context.Context, products []models.Product) {
	payload, err := json.Marshal(Event{Event: "products", Data: products})
	if err != nil {
		log.Errorw(ctx, "encode products event", "error", err)
		return
	}
	b.hub.Broadcast(ctx, payload)
}
