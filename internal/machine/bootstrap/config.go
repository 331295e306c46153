package bootstrap

import "github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"

type VendingConfig struct {
	DbSettings database.PostgresSettings
	HttpPort   string
	JwtSecret  string
}
