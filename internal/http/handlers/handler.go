package handlers

import (
	"splitbill-service/internal/config"
	"splitbill-service/internal/order"

	"go.uber.org/zap"
)

type Handler struct {
	Store       *order.Store
	Coordinator *order.Coordinator
	Logger      *zap.Logger
	Config      config.Config
}
