package main

import (
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/evseew/PEcoinDashboard-Backend/api"
	"github.com/evseew/PEcoinDashboard-Backend/app"
	"github.com/evseew/PEcoinDashboard-Backend/common"
	"github.com/evseew/PEcoinDashboard-Backend/indexing"
	"github.com/evseew/PEcoinDashboard-Backend/models"
	"github.com/evseew/PEcoinDashboard-Backend/solana"
	"github.com/evseew/PEcoinDashboard-Backend/solana/client"
	"github.com/evseew/PEcoinDashboard-Backend/webhook"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	var configFile string
	var envFile string
	flag.StringVar(&configFile, "config", "", "path to yaml config file")
	flag.StringVar(&envFile, "env", "", "path to env file")
	flag.Parse()

	app.InitConfig(configFile, envFile)
	app.InitLogger()
	app.InitDB()

	signer := initSigner()
	log.Info("[MAIN] signer address: ", signer.Address())

	chainClient, err := client.NewClient()
	if err != nil {
		log.Fatal("[MAIN] could not connect to any rpc endpoint: ", err)
	}
	log.Info("[MAIN] connected to rpc endpoint: ", chainClient.GetEndpoint())

	dasClient := client.NewDASClient()
	minter := solana.NewMinter(chainClient, dasClient, signer, solana.MinterConfigFromApp())

	notifier := webhook.NewNotifier(webhook.NotifierConfigFromApp())
	if err := notifier.LoadFromDB(); err != nil {
		log.Error("[MAIN] could not load webhook registrations: ", err)
	}

	wg := &sync.WaitGroup{}

	// monitor probes get their own, tighter timeout so one slow read
	// does not stall a whole polling tick
	probeDAS := client.NewDASClientWithURL(
		app.Config.Solana.DASAPIURL,
		time.Duration(app.Config.IndexingMonitor.ProbeTimeoutMillis)*time.Millisecond,
	)
	monitor := indexing.NewMonitor(probeDAS, notifier, indexing.MonitorConfigFromApp(), wg)

	healthService, healthRunner := app.NewHealthCheck(signer.Address(), wg)

	services := []models.Service{healthService}
	if app.Config.IndexingMonitor.Enabled {
		services = append(services, monitor)
	}
	if app.Config.HTTPServer.Enabled {
		handler := api.NewHandler(minter, monitor, notifier, healthRunner)
		services = append(services, api.NewServer(handler, wg))
	}
	healthRunner.SetServices(services)

	wg.Add(len(services))
	for _, service := range services {
		go service.Start()
	}

	gracefulStop := make(chan os.Signal, 1)
	done := make(chan bool, 1)
	signal.Notify(gracefulStop, syscall.SIGINT, syscall.SIGTERM)
	go waitForExitSignals(gracefulStop, done)
	<-done

	log.Debug("[MAIN] gracefully shutting down server...")
	for i := len(services) - 1; i >= 0; i-- {
		services[i].Stop()
	}
	wg.Wait()
	app.DB.Disconnect()
	log.Debug("[MAIN] server gracefully stopped")
}

func initSigner() *common.Signer {
	if app.Config.Solana.PrivateKey != "" {
		signer, err := common.NewSignerFromBase58(app.Config.Solana.PrivateKey)
		if err != nil {
			log.Fatal("[MAIN] invalid private key: ", err)
		}
		return signer
	}
	signer, err := common.NewSignerFromMnemonic(app.Config.Solana.Mnemonic)
	if err != nil {
		log.Fatal("[MAIN] invalid mnemonic: ", err)
	}
	return signer
}

func waitForExitSignals(gracefulStop chan os.Signal, done chan bool) {
	sig := <-gracefulStop
	log.Debug("[MAIN] got signal: ", sig)
	done <- true
}
