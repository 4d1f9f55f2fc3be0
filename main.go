package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/csrf"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/yogaprasetya/go-storefront/app/cmd"
	"github.com/yogaprasetya/go-storefront/app/configs"
	"github.com/yogaprasetya/go-storefront/app/routes"
)

func main() {
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	env := configs.LoadEnv()
	cartConfig := configs.LoadCartConfig()

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatal("Session keys missing, run `go-storefront generate-keys`: ", err)
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	log.Println("Database connected.")

	redisClient, err := configs.OpenRedis()
	if err != nil {
		log.Fatal("Redis connection failed: ", err)
	}
	log.Println("Redis connected.")

	var snapClient snap.Client
	midtransEnv := midtrans.Sandbox
	if env.AppEnv == "production" {
		midtransEnv = midtrans.Production
	}
	snapClient.New(env.MidtransServerKey, midtransEnv)

	router := routes.NewRouter(db, redisClient, keys, cartConfig, snapClient)

	csrfMiddleware := csrf.Protect(keys.AuthKey, csrf.Secure(env.AppEnv == "production"))

	server := http.Server{
		Addr:    env.Port,
		Handler: csrfMiddleware(router),
	}

	log.Printf("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("server stopped: ", err)
	}
}
