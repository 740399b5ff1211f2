package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/ipa-mnemonic/internal/app/batch"
	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
	"github.com/heartmarshall/ipa-mnemonic/internal/ipa"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/keyword"
	"github.com/heartmarshall/ipa-mnemonic/internal/service/picture"
)

const (
	// MaxBatchItems caps the transcriptions accepted by one POST.
	MaxBatchItems = 100
	maxBodyBytes  = 1 << 20
)

// matchService defines the minimal interface needed by MatchHandler.
type matchService interface {
	Tokenize(raw string, opts ipa.TokenizeOptions) []ipa.Token
	ToSegments(raw string, maxCount int) []string
	ToStorageKey(raw string, maxCount int) string
	DefaultKeywordOptions() keyword.Options
	MatchKeyword(ctx context.Context, raw string, opts keyword.Options) (keyword.Match, error)
	MatchPictureWords(ctx context.Context, raw string) (picture.Result, error)
}

// MatchHandler serves the matching and normalization endpoints.
type MatchHandler struct {
	svc         matchService
	log         *slog.Logger
	maxSegments int
}

// NewMatchHandler creates a MatchHandler. maxSegments caps the storage
// keys it reports.
func NewMatchHandler(svc matchService, logger *slog.Logger, maxSegments int) *MatchHandler {
	return &MatchHandler{svc: svc, log: logger.With("handler", "match"), maxSegments: maxSegments}
}

type matchRequest struct {
	IPA             []string `json:"ipa"`
	Ranked          bool     `json:"ranked"`
	Limit           int      `json:"limit"`
	IncludeRejected bool     `json:"include_rejected"`
	Tokens          bool     `json:"tokens"`
}

type matchResponse struct {
	Results []batch.MatchDTO `json:"results"`
}

// Match handles GET /api/v1/match?ipa=...&ranked=&limit=&include_rejected=&tokens=.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := matchRequest{IPA: []string{q.Get("ipa")}}

	var err error
	if req.Ranked, err = boolParam(q.Get("ranked")); err != nil {
		writeError(w, http.StatusBadRequest, "ranked: "+err.Error())
		return
	}
	if req.IncludeRejected, err = boolParam(q.Get("include_rejected")); err != nil {
		writeError(w, http.StatusBadRequest, "include_rejected: "+err.Error())
		return
	}
	if req.Tokens, err = boolParam(q.Get("tokens")); err != nil {
		writeError(w, http.StatusBadRequest, "tokens: "+err.Error())
		return
	}
	if v := q.Get("limit"); v != "" {
		if req.Limit, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
	}

	results, err := h.match(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results[0])
}

// MatchBatch handles POST /api/v1/match with a JSON matchRequest body.
func (h *MatchHandler) MatchBatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IPA) == 0 {
		writeError(w, http.StatusBadRequest, "ipa is required")
		return
	}
	if len(req.IPA) > MaxBatchItems {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d transcriptions per request", MaxBatchItems))
		return
	}

	results, err := h.match(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matchResponse{Results: results})
}

// Normalize handles GET /api/v1/normalize?ipa=... and returns the
// canonical forms without consulting any dictionary.
func (h *MatchHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ipa")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "ipa is required")
		return
	}
	writeJSON(w, http.StatusOK, h.describe(raw, true))
}

func (h *MatchHandler) match(ctx context.Context, req matchRequest) ([]batch.MatchDTO, error) {
	opts := h.svc.DefaultKeywordOptions()
	opts.PickOne = !req.Ranked
	opts.Limit = req.Limit
	opts.IncludeRejected = req.IncludeRejected

	out := make([]batch.MatchDTO, 0, len(req.IPA))
	for i, raw := range req.IPA {
		if raw == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("ipa[%d]", i), "must not be empty")
		}
		dto := h.describe(raw, req.Tokens)

		kw, err := h.svc.MatchKeyword(ctx, raw, opts)
		if err != nil {
			return nil, err
		}
		dto.SetKeyword(kw)

		pics, err := h.svc.MatchPictureWords(ctx, raw)
		if err != nil {
			return nil, err
		}
		dto.SetPictures(pics)

		out = append(out, dto)
	}
	return out, nil
}

func (h *MatchHandler) describe(raw string, withTokens bool) batch.MatchDTO {
	dto := batch.MatchDTO{
		IPA:        raw,
		Segments:   h.svc.ToSegments(raw, ipa.KeywordSegments),
		StorageKey: h.svc.ToStorageKey(raw, h.maxSegments),
	}
	if withTokens {
		for _, tok := range h.svc.Tokenize(raw, ipa.DefaultTokenizeOptions) {
			dto.Tokens = append(dto.Tokens, fmt.Sprint(tok))
		}
	}
	return dto
}

func (h *MatchHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDictionaryUnavailable):
		h.log.WarnContext(r.Context(), "dictionary unavailable", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "dictionary unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timed out")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New("must be a boolean")
	}
	return b, nil
}
