package response

// ExportResponse carries the generated XLSX workbook, base64-encoded. The field
// name matches what the download front-end already expects.
type ExportResponse struct {
	FileContent string `json:"fileContent"`
}

// WebhookAckResponse acknowledges a processed webhook notification.
type WebhookAckResponse struct {
	Message string `json:"message"`
}
