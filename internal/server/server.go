package server

// Server объединяет HTTP сервера отдельных сущностей.
type Server struct {
	DealsServer
	TrackingServer
	InventoryServer
	ReportServer
}

func NewServer(
	dealsServer DealsServer,
	trackingServer TrackingServer,
	inventoryServer InventoryServer,
	reportServer ReportServer,
) Server {
	return Server{
		DealsServer:     dealsServer,
		TrackingServer:  trackingServer,
		InventoryServer: inventoryServer,
		ReportServer:    reportServer,
	}
}
