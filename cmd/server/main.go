package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	chaineth "basaegochi/internal/adapter/chain/ethereum"
	chainmem "basaegochi/internal/adapter/chain/memory"
	httpadapter "basaegochi/internal/adapter/http"
	metricsinmem "basaegochi/internal/adapter/metrics/inmemory"
	"basaegochi/internal/adapter/sched"
	gormstore "basaegochi/internal/adapter/store/gorm"
	sqlitestore "basaegochi/internal/adapter/store/sqlite"
	"basaegochi/internal/app/leaderboard"
	"basaegochi/internal/app/petcare"
	"basaegochi/internal/app/ports"
	"basaegochi/internal/app/profile"
	"basaegochi/internal/app/session"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	store, txManager := mustBuildStore()
	chain := buildChainClientFromEnv()
	recorder := metricsinmem.NewRecorder()

	sessions := session.NewManager(session.Config{
		StepDelay:  msEnv("BATTLE_STEP_DELAY_MS", 1000),
		MatchDelay: msEnv("BATTLE_MATCH_DELAY_MS", 2000),
	}, sched.NewTimer(), chain, recorder)
	defer sessions.CloseAll()

	h := httpadapter.Handler{
		PetUC: petcare.UseCase{
			TxManager:     txManager,
			Store:         store,
			DecayInterval: time.Duration(intEnv("PET_DECAY_MINUTES", 240)) * time.Minute,
			Now:           time.Now,
		},
		Sessions:      sessions,
		LeaderboardUC: leaderboard.UseCase{Chain: chain},
		ProfileUC:     profile.UseCase{Chain: chain},
		Chain:         chain,
		KPI:           recorder,
	}

	addr := strings.TrimSpace(os.Getenv("BASAEGOCHI_LISTEN"))
	if addr == "" {
		addr = ":8080"
	}
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("basaegochi server listening on %s", addr)
	s.Spin()
}

func mustBuildStore() (ports.PetStore, ports.TxManager) {
	if dsn := strings.TrimSpace(os.Getenv("BASAEGOCHI_DB_DSN")); dsn != "" {
		db, err := gormstore.OpenPostgres(dsn)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		if err := gormstore.AutoMigrate(db); err != nil {
			log.Fatalf("migrate pets table: %v", err)
		}
		return gormstore.NewPetRepo(db), gormstore.NewTxManager(db)
	}

	path := strings.TrimSpace(os.Getenv("BASAEGOCHI_SQLITE_PATH"))
	if path == "" {
		path = "./basaegochi.db"
	}
	store, err := sqlitestore.Open(path)
	if err != nil {
		log.Fatalf("open sqlite store: %v", err)
	}
	return store, nil
}

func buildChainClientFromEnv() ports.ChainClient {
	rpcURL := strings.TrimSpace(os.Getenv("CHAIN_RPC_URL"))
	contract := strings.TrimSpace(os.Getenv("CHAIN_CONTRACT_ADDRESS"))
	if rpcURL == "" || contract == "" {
		log.Println("no chain configured, using in-memory battle contract simulator")
		return chainmem.NewClient(strings.TrimSpace(os.Getenv("CHAIN_SIM_ADDRESS")))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	client, err := chaineth.Dial(ctx, chaineth.Config{
		RPCURL:          rpcURL,
		ContractAddress: contract,
		PrivateKeyHex:   strings.TrimSpace(os.Getenv("CHAIN_PRIVATE_KEY")),
		ChainID:         int64(intEnv("CHAIN_ID", 0)),
	})
	if err != nil {
		log.Fatalf("dial chain: %v", err)
	}
	return client
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func msEnv(key string, fallback int) time.Duration {
	return time.Duration(intEnv(key, fallback)) * time.Millisecond
}
