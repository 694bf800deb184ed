package domain

import "errors"

var (
	ErrNotFound           = errors.New("quotation_not_found")
	ErrQuotationFinalized = errors.New("quotation_finalized")
	ErrNotPendingApproval = errors.New("quotation_not_pending_approval")

	ErrMissingDeveloperType = errors.New("missing_developer_type")
	ErrMissingProjectRegion = errors.New("missing_project_region")
	ErrMissingPlotArea      = errors.New("missing_plot_area")
	ErrInvalidPlotArea      = errors.New("invalid_plot_area")
	ErrMissingDeveloperName = errors.New("missing_developer_name")
	ErrMissingAgentType     = errors.New("missing_agent_type")
	ErrMissingServices      = errors.New("missing_services")
	ErrInvalidMobile        = errors.New("invalid_contact_mobile")
	ErrInvalidEmail         = errors.New("invalid_contact_email")

	ErrAccessDenied = errors.New("access_denied")
)
