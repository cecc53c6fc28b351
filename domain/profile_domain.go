package domain

import "errors"

var (
	MessageSuccessGetProfile   = "profile retrieved successfully"
	MessageSuccessGetDashboard = "dashboard retrieved successfully"

	MessageFailedGetProfile   = "failed to retrieve profile"
	MessageFailedGetDashboard = "failed to retrieve dashboard"

	ErrProfileNotFound = errors.New("profile not found")
)

type (
	ProfileResponse struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
	}

	DashboardResponse struct {
		FullName      string           `json:"full_name"`
		ReportCounts  ReportCounts     `json:"report_counts"`
		RecentReports []ReportResponse `json:"recent_reports"`
		LatestVital   *VitalResponse   `json:"latest_vital"`
	}
)
