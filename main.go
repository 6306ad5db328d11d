package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/pharmacare/lib/myconfig"
	"github.com/MarcGrol/pharmacare/lib/myevents"
	"github.com/MarcGrol/pharmacare/lib/myhttp"
	"github.com/MarcGrol/pharmacare/lib/myhttpclient"
	"github.com/MarcGrol/pharmacare/lib/mylocalstorage"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/mypubsub"
	"github.com/MarcGrol/pharmacare/lib/myqueue"
	"github.com/MarcGrol/pharmacare/lib/mysession"
	"github.com/MarcGrol/pharmacare/lib/mystore"
	"github.com/MarcGrol/pharmacare/lib/mytime"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
	"github.com/MarcGrol/pharmacare/lib/myvault"
	"github.com/MarcGrol/pharmacare/services/admin"
	"github.com/MarcGrol/pharmacare/services/cart"
	"github.com/MarcGrol/pharmacare/services/catalog"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
	"github.com/MarcGrol/pharmacare/services/favorites"
	"github.com/MarcGrol/pharmacare/services/order"
	"github.com/MarcGrol/pharmacare/services/orderapi"
	"github.com/MarcGrol/pharmacare/services/settings"
	"github.com/MarcGrol/pharmacare/services/storefront"
	"github.com/MarcGrol/pharmacare/services/warmup"
)

const janitorInterval = 5 * time.Minute

func main() {
	c, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := myconfig.Load(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatalf("Error loading configuration: %s", err)
	}
	mylog.SetMinSeverity(mylog.ParseSeverity(cfg.LogLevel))
	logger := mylog.New("main")

	router := mux.NewRouter()
	router.Use(myhttp.Recoverer(logger))
	router.Use(mysession.Middleware(myuuid.RealUUIDer{}))

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	// events
	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c, router)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	outboxStore, outboxStoreCleanup, err := mystore.New[myevents.EventEnvelope](c)
	if err != nil {
		log.Fatalf("Error creating outbox store: %s", err)
	}
	defer outboxStoreCleanup()

	publisher := mypublisher.New(c, outboxStore, pubsub, queue, nower, uuider)
	err = publisher.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering publisher endpoints: %s", err)
	}

	// storage
	vault, vaultCleanup, err := myvault.New(c)
	if err != nil {
		log.Fatalf("Error creating vault: %s", err)
	}
	defer vaultCleanup()

	productStore, productStoreCleanup, err := mystore.New[catalogapi.Product](c)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	defer productStoreCleanup()

	orderStore, orderStoreCleanup, err := mystore.New[orderapi.Order](c)
	if err != nil {
		log.Fatalf("Error creating order store: %s", err)
	}
	defer orderStoreCleanup()

	settingsStore, settingsStoreCleanup, err := mystore.New[settings.Settings](c)
	if err != nil {
		log.Fatalf("Error creating settings store: %s", err)
	}
	defer settingsStoreCleanup()

	adminStore, adminStoreCleanup, err := mystore.New[admin.Admin](c)
	if err != nil {
		log.Fatalf("Error creating admin store: %s", err)
	}
	defer adminStoreCleanup()

	adminSessionStore, adminSessionStoreCleanup, err := mystore.New[admin.Session](c)
	if err != nil {
		log.Fatalf("Error creating admin session store: %s", err)
	}
	defer adminSessionStoreCleanup()

	localStorage, localStorageCleanup, err := mylocalstorage.New(c, cfg.Redis)
	if err != nil {
		log.Fatalf("Error creating local storage: %s", err)
	}
	defer localStorageCleanup()

	// services
	adminService := admin.NewWebService(adminStore, adminSessionStore, productStore, orderStore, vault, nower, uuider)
	err = adminService.Seed(c)
	if err != nil {
		log.Fatalf("Error seeding admin: %s", err)
	}
	registerOrDie(c, "admin", adminService, router)

	catalogService, err := catalog.NewWebService(productStore, cfg.UploadDir, uuider, publisher, adminService.RequireAdmin)
	if err != nil {
		log.Fatalf("Error creating catalog service: %s", err)
	}
	registerOrDie(c, "catalog", catalogService, router)
	err = catalogService.Seed(c, cfg.CatalogSeedFile)
	if err != nil {
		log.Fatalf("Error seeding catalog: %s", err)
	}

	settingsService := settings.NewWebService(settingsStore, adminService.RequireAdmin)
	registerOrDie(c, "settings", settingsService, router)

	registry := storefront.NewRegistry(localStorage, publisher, nower, cfg.SessionIdleTimeout)
	go registry.RunJanitor(c, janitorInterval)
	registerOrDie(c, "storefront", storefront.NewWebService(registry, publisher), router)

	cartProvider := cart.NewProvider(registry)
	registerOrDie(c, "cart", cart.NewWebService(cartProvider, productStore), router)
	registerOrDie(c, "favorites", favorites.NewWebService(favorites.NewProvider(registry), productStore), router)

	senders := order.NewSenders(cfg, myhttpclient.New(), vault)
	orderService := order.NewWebService(orderStore, productStore, settingsService, cartProvider, senders, publisher, nower, uuider, adminService.RequireAdmin)
	registerOrDie(c, "order", orderService, router)

	registerOrDie(c, "warmup", warmup.NewService(settingsService, productStore, publisher, uuider), router)

	startWebServerBlocking(cfg.Port, router)
}

type endpointRegistrar interface {
	RegisterEndpoints(c context.Context, router *mux.Router) error
}

func registerOrDie(c context.Context, name string, service endpointRegistrar, router *mux.Router) {
	err := service.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering %s endpoints: %s", name, err)
	}
}

func startWebServerBlocking(port string, router *mux.Router) {
	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
