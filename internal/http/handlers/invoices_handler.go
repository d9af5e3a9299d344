package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"parkbill/internal/http/middleware"
	"parkbill/internal/service"
)

// NewFacilityInvoicesHandler returns GET /facilities/{facilityID}/invoices handler.
func NewFacilityInvoicesHandler(svc *service.InvoiceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facilityID := r.PathValue("facilityID")
		if facilityID == "" {
			writeError(w, http.StatusBadRequest, "missing facility id")
			return
		}

		if subject, ok := middleware.SubjectFromContext(r.Context()); ok {
			logger.Debug("invoice request",
				zap.String("subject", subject),
				zap.String("facility_id", facilityID),
			)
		}

		invoices, err := svc.GetInvoices(r.Context(), facilityID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"invoices": invoices,
		})
	}
}

// NewCustomerInvoiceHandler returns GET /facilities/{facilityID}/invoices/{customerID} handler.
func NewCustomerInvoiceHandler(svc *service.InvoiceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facilityID := r.PathValue("facilityID")
		customerID := r.PathValue("customerID")
		if facilityID == "" || customerID == "" {
			writeError(w, http.StatusBadRequest, "missing facility or customer id")
			return
		}

		invoice, err := svc.GetInvoice(r.Context(), facilityID, customerID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, invoice)
	}
}

func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var unknownFacility *service.UnknownFacilityError
	if errors.As(err, &unknownFacility) {
		writeError(w, http.StatusNotFound, unknownFacility.Error())
		return
	}

	var coverage *service.ScheduleCoverageError
	if errors.As(err, &coverage) {
		logger.Error("rate schedule coverage gap", zap.Error(err))
		writeError(w, http.StatusInternalServerError, coverage.Error())
		return
	}

	logger.Error("invoice computation failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "failed to compute invoices")
}
