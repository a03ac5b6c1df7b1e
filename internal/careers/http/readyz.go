package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/store"
	"github.com/aussiebroadwan/careers/pkg/careersdk"
	"github.com/aussiebroadwan/careers/pkg/httpx"
	"github.com/aussiebroadwan/careers/pkg/jwtx"
	"golang.org/x/sync/errgroup"
)

const readyzTimeout = 2 * time.Second

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the database and the identity provider keys
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	careersdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	careersdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
		defer cancel()

		checks := &careersdk.HealthChecks{
			Database: "ok",
			Keys:     "ok",
		}

		// Each check writes only its own field.
		var g errgroup.Group
		g.Go(func() error {
			if err := st.Ping(ctx); err != nil {
				checks.Database = "error: " + err.Error()
				return err
			}
			return nil
		})
		g.Go(func() error {
			if !keys.IsReady() {
				checks.Keys = "error: no keys loaded"
				return errors.New("no keys loaded")
			}
			return nil
		})

		overallStatus := "ok"
		statusCode := http.StatusOK
		if err := g.Wait(); err != nil {
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := careersdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
