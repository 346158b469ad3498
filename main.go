package main

import (
	"github.com/LedgerPay/LedgerPay-Backend/api"
	"github.com/LedgerPay/LedgerPay-Backend/utils"
)

func main() {
	server := api.NewServer(utils.EnvPath)
	server.Start()
}
