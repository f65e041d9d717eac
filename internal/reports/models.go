package reports

// Поддерживаемые форматы выгрузки плана
const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

// ReportResult — готовый отчёт. В inline-режиме заполнены Data/ContentType/
// Filename, в blob-режиме — DownloadURL.
type ReportResult struct {
	Data        []byte
	ContentType string
	Filename    string
	DownloadURL string
}

// DownloadResponse отдаётся вместо файла, когда отчёт выгружен в object storage.
type DownloadResponse struct {
	DownloadURL string `json:"download_url"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
