// seed administra los datos del backend local y emite tokens de desarrollo.
//
// Uso:
//
//	go run ./cmd/seed reset                 resiembra todas las colecciones
//	go run ./cmd/seed clear                 borra todas las colecciones
//	go run ./cmd/seed token <workerId> [rol] imprime un JWT (rol por defecto: service)
//
// Usa la misma configuración que la API (STORE_DRIVER, LOCAL_STORAGE_PREFIX, JWT_*).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/podocare-api/internal/application/dto"
	"github.com/jhoicas/podocare-api/internal/infrastructure/local"
	"github.com/jhoicas/podocare-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/podocare-api/internal/interfaces/http"
	"github.com/jhoicas/podocare-api/pkg/config"
	"github.com/jhoicas/podocare-api/pkg/jwt"
	"github.com/jhoicas/podocare-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	switch os.Args[1] {
	case "token":
		if len(os.Args) < 3 {
			usage()
		}
		role := httpRouter.RoleService
		if len(os.Args) > 3 {
			role = os.Args[3]
		}
		if err := printToken(cfg, os.Args[2], role); err != nil {
			fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
			os.Exit(1)
		}
		return
	case "reset", "clear":
	default:
		usage()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	blobStore, closeStore, err := store.Open(ctx, cfg, log.Component("store"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacén: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	set := local.NewSet(local.Options{
		Store:        blobStore,
		Prefix:       cfg.Repository.LocalStoragePrefix,
		Latency:      local.NoLatency{},
		DefaultLimit: cfg.Repository.DefaultLimit,
		Logger:       log.Zerolog(),
	})

	if os.Args[1] == "reset" {
		err = set.ResetAll(ctx)
	} else {
		err = set.ClearAll(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
	for _, r := range set.Resetters() {
		log.Info().Str("key", r.Key()).Msg(os.Args[1])
	}
}

func printToken(cfg *config.Config, workerID, role string) error {
	token, err := jwt.Generate(cfg.JWT.Secret, workerID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.TokenResponse{
		Token:     token,
		WorkerID:  workerID,
		Role:      role,
		ExpiresIn: cfg.JWT.Expiration,
	})
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: seed reset | clear | token <workerId> [rol]")
	os.Exit(2)
}
