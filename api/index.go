package handler

import (
	"hotelbooker/config"
	"hotelbooker/di"
	"hotelbooker/shared/logger"
	httpTransport "hotelbooker/transport/http"
	"net/http"
	"os"
	"sync"
)

var (
	app  *httpTransport.HTTP
	once sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built on the
// first invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.Configure(os.Stdout, cfg)

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
