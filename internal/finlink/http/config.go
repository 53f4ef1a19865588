package http

import (
	"net/http"

	"github.com/aussiebroadwan/finlink/internal/finlink/service"
	"github.com/aussiebroadwan/finlink/internal/finlink/store"
	"github.com/aussiebroadwan/finlink/internal/finlink/widget"
	"github.com/aussiebroadwan/finlink/pkg/httpx"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
)

// ConfigHandler reads and replaces the gateway settings.
type ConfigHandler struct {
	Data        *service.LinkDataService
	Credentials *store.Credentials
	Widget      widget.Provider
	Health      *service.HealthMonitor
}

// HandleGet handles GET /v1/config
//
//	@Summary		Gateway settings
//	@Tags			Config
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	ConfigResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"code, message"
//	@Router			/v1/config [get].
func (h *ConfigHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.current())
}

// HandlePut handles PUT /v1/config
//
//	@Summary		Replace gateway settings
//	@Description	Persists use_real_api and api_url and swaps the gateway for calls started afterwards.
//	@Description	mode is runtime only and is reset from GATEWAY_MODE on restart.
//	@Tags			Config
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ConfigRequest		true	"Settings"
//	@Success		200		{object}	ConfigResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	httpx.ErrorResponse	"code, message"
//	@Router			/v1/config [put].
func (h *ConfigHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ConfigRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	mode := h.Data.Mode()
	if req.Mode != "" {
		m, err := service.ParseMode(req.Mode)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		mode = m
	}

	cfg := linkapi.Config{UseRealAPI: req.UseRealAPI, APIURL: req.APIURL}
	if err := h.Credentials.SetGatewayConfig(ctx, cfg); err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Data.Configure(cfg)
	h.Data.SetMode(mode)
	slogx.FromContext(ctx).Info("gateway settings updated",
		"use_real_api", cfg.UseRealAPI,
		"api_url", cfg.APIURL,
		"mode", mode,
	)

	httpx.WriteJSON(w, http.StatusOK, h.current())
}

// HandleHealth handles GET /v1/config/health
//
//	@Summary		Test backend connection
//	@Description	Probes the backend now instead of waiting for the next scheduled check.
//	@Tags			Config
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	service.HealthStatus
//	@Failure		401	{object}	httpx.ErrorResponse	"code, message"
//	@Router			/v1/config/health [get].
func (h *ConfigHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Health.Check(r.Context()))
}

func (h *ConfigHandler) current() ConfigResponse {
	cfg := h.Data.GatewayConfig()
	return ConfigResponse{
		UseRealAPI: cfg.UseRealAPI,
		APIURL:     cfg.APIURL,
		Mode:       h.Data.Mode(),
		Widget:     h.Widget.Name(),
	}
}
