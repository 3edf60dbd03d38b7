package report

import (
	"context"

	"ledgerdash/internal/api"
	"ledgerdash/internal/auth"
	"ledgerdash/internal/gateway"
	"ledgerdash/internal/logger"
	"ledgerdash/internal/metrics"
)

type Gateway interface {
	Post(ctx context.Context, path string, payload any, token string) (*gateway.Response, error)
}

type Service interface {
	Request(ctx context.Context, who auth.Identity) (string, error)
}

type service struct {
	gw Gateway
}

func NewService(gw Gateway) Service {
	return &service{gw: gw}
}

type reportRequest struct {
	UserID int `json:"user_id"`
}

// Request asks the report service to build a report for the caller. The
// report itself is produced asynchronously upstream.
func (s *service) Request(ctx context.Context, who auth.Identity) (string, error) {
	resp, err := s.gw.Post(ctx, "/reports", reportRequest{UserID: who.UserID}, who.Token)
	if err != nil {
		metrics.RecordReportRequest(metrics.Outcome(false))
		return "", err
	}
	if !resp.OK() {
		metrics.RecordReportRequest(metrics.Outcome(false))
		msg := resp.ErrorMessage("Failed to request report")
		logger.Warn("report request rejected", "user_id", who.UserID, "status", resp.StatusCode, "error", msg)
		return "", api.NewError(resp.StatusCode, msg)
	}

	metrics.RecordReportRequest(metrics.Outcome(true))
	logger.Info("report requested", "user_id", who.UserID)
	return "Report created", nil
}
