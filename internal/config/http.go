package config

type HTTP struct {
	Port int `env:"HTTP_PORT" envDefault:"3000"`
}
