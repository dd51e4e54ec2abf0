package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/veridia/authgate/internal/api"
	"github.com/veridia/authgate/internal/config"
	"github.com/veridia/authgate/internal/gateway"
	"github.com/veridia/authgate/internal/httpserver"
	"github.com/veridia/authgate/internal/i18n"
	"github.com/veridia/authgate/internal/identity"
	"github.com/veridia/authgate/internal/logger"
	"github.com/veridia/authgate/internal/mailer"
	"github.com/veridia/authgate/internal/profile"
	"github.com/veridia/authgate/internal/requestid"
	"github.com/veridia/authgate/internal/token"
)

const serviceName = "authgate"

// devEmailDir receives outbound mail as files when no Postmark token is
// configured.
const devEmailDir = "./email-output"

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("service stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		apiCfg      api.Config
		serverCfg   httpserver.Config
		tokenCfg    token.Config
		identityCfg identity.Config
		profileCfg  profile.Config
		mailerCfg   mailer.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&apiCfg) },
		func() error { return config.Load(&serverCfg) },
		func() error { return config.Load(&tokenCfg) },
		func() error { return config.Load(&identityCfg) },
		func() error { return config.Load(&profileCfg) },
		func() error { return config.Load(&mailerCfg) },
	} {
		if err := load(); err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
	}

	// PaaS platforms inject the listen port as PORT.
	if port := os.Getenv("PORT"); port != "" {
		serverCfg.Addr = ":" + port
	}

	log := logger.New(
		logger.WithEnvironment(apiCfg.Environment, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	tokens, err := token.New(tokenCfg)
	if err != nil {
		return fmt.Errorf("build token service: %w", err)
	}

	var provider identity.Provider
	if identityCfg.APIKey != "" {
		client, err := identity.NewClient(identityCfg, identity.WithLogger(log))
		if err != nil {
			return fmt.Errorf("build identity client: %w", err)
		}
		provider = client
	} else {
		log.Warn("no identity api key configured, using in-memory identity backend")
		provider = identity.NewLocalBackend()
	}

	connectCtx, cancel := context.WithTimeout(ctx, time.Minute)
	mongoClient, err := profile.Connect(connectCtx, profileCfg)
	cancel()
	if err != nil {
		return fmt.Errorf("connect to document store: %w", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("failed to disconnect from document store", logger.Error(err))
		}
	}()
	profiles := profile.NewMongoStore(mongoClient.Database(profileCfg.Database))

	var sender mailer.EmailSender
	if mailerCfg.ServerToken != "" {
		sender, err = mailer.NewPostmarkSender(mailerCfg)
		if err != nil {
			return fmt.Errorf("build email sender: %w", err)
		}
	} else {
		log.Warn("no postmark token configured, writing emails to disk",
			slog.String("dir", devEmailDir))
		sender = mailer.NewDevSender(devEmailDir)
	}
	recovery := mailer.NewRecoveryMail(sender, apiCfg.FrontendOrigin)

	auth, err := gateway.New(gateway.Dependencies{
		Identity: provider,
		Profiles: profiles,
		Tokens:   tokens,
		Recovery: recovery,
		Socials:  identity.NewRegistry(),
	}, gateway.WithLogger(log))
	if err != nil {
		return fmt.Errorf("build auth gateway: %w", err)
	}

	catalog, err := i18n.New()
	if err != nil {
		return fmt.Errorf("load message catalog: %w", err)
	}

	router, err := api.NewRouter(apiCfg, api.Deps{
		Auth:     auth,
		Sessions: tokens,
		Catalog:  catalog,
		Debug: api.DebugInfo{
			Environment:               apiCfg.Environment,
			IdentityProjectConfigured: identityCfg.ProjectID != "",
			EmailKeyConfigured:        mailerCfg.ServerToken != "",
			Port:                      portFromAddr(serverCfg.Addr),
		},
		ReadyChecks: []func(context.Context) error{
			profile.Healthcheck(mongoClient),
		},
	}, api.WithLogger(log))
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	log.Info("starting service",
		slog.String("env", apiCfg.Environment),
		slog.String("addr", serverCfg.Addr),
	)

	srv := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

func portFromAddr(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
