package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	api "github.com/mind-engage/thesisgrade/internal/api/http"
	auth "github.com/mind-engage/thesisgrade/internal/auth/middleware"
)

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	passHash, err := adminHash(a)
	if err != nil {
		return err
	}

	if passHash != "" && a.cfg.AuthSecret == "" {
		a.log.Warn("AUTH_HMAC_SECRET unset; signing with a random key, admin tokens end with this process")
	}

	h := api.NewRouter(api.Deps{
		Engine:        a.engine,
		Log:           a.store,
		Intake:        a.intake,
		Reports:       a.report,
		Roster:        a.roster,
		Blobs:         a.blobs,
		Auth:          auth.NewAuthService(a.cfg.AuthSecret, a.cfg.TokenTTL),
		AdminPassHash: passHash,
		Logger:        a.log,
		CORSOrigins:   a.cfg.CORSOrigins,
		Timeout:       a.cfg.RequestTimeout,
		Ready: func() error {
			pctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return a.dbh.PingContext(pctx)
		},
	})

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", "addr", a.cfg.HTTPAddr, "db", a.cfg.DBDriver, "admin_login", passHash != "")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	a.log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// adminHash returns the bcrypt hash guarding the recap. A plaintext
// ADMIN_PASSWORD is hashed at startup; with neither set, login is disabled.
func adminHash(a *app) (string, error) {
	if a.cfg.AdminPassHash != "" {
		return a.cfg.AdminPassHash, nil
	}
	if a.cfg.AdminPassword == "" {
		a.log.Warn("ADMIN_PASS_HASH and ADMIN_PASSWORD unset; admin login disabled")
		return "", nil
	}
	b, err := bcrypt.GenerateFromPassword([]byte(a.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
