package main

import (
	"github.com/nguyentranbao-ct/shop-catalog/cmd"
)

func main() {
	cmd.Execute()
}
