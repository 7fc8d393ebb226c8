package controller

import (
	"net/http"
	"strconv"
	"time"

	http_ll "github.com/nightowlcasino/logline/http"
	"github.com/spf13/viper"
)

func NewServer(handler http.Handler) *http_ll.Server {
	return http_ll.NewServer(":"+strconv.Itoa(viper.GetInt("server.port")),
		handler,
		http_ll.ReadTimeout(1*time.Minute),
		http_ll.WriteTimeout(1*time.Minute),
		http_ll.IdleTimeout(2*time.Minute))
}
