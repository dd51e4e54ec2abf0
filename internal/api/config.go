package api

// Config carries the HTTP-layer settings read from the environment.
type Config struct {
	// Environment names the deployment (development, staging, production).
	// It is reported on /debug and selects the logger preset in main.
	Environment string `env:"APP_ENV" envDefault:"development"`

	// FrontendOrigin is added to the CORS allow-list alongside the static
	// development origins. It is also where recovery-email links point.
	FrontendOrigin string `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:3000"`
}
