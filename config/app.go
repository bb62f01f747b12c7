package config

type App struct {
	Port           string `env:"APP_PORT" default:"8000"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	JWTSecret      string `env:"JWT_SECRET,required"`
	OpenLibraryURL string `env:"OPENLIBRARY_URL" default:"https://openlibrary.org"`
	Env            string `env:"APP_ENV" default:"dev"`
}
