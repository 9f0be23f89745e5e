package server

import "time"

// Config carries the server's runtime settings. The launcher fills it from
// the environment.
type Config struct {
	Addr            string        `env:"CHESS3D_ADDR" envDefault:":8080"`
	AllowAnyOrigin  bool          `env:"CHESS3D_ALLOW_ANY_ORIGIN" envDefault:"true"`
	MaxRooms        int           `env:"CHESS3D_MAX_ROOMS" envDefault:"64"`
	ShutdownTimeout time.Duration `env:"CHESS3D_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
