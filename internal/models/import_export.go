package models

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ContentType is the MIME type served for the export format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

type ExportRequest struct {
	FileID  string       `json:"file_id" validate:"required"`
	Keyword string       `json:"keyword"`
	Format  ExportFormat `json:"format" validate:"required,export_format"`
}

// ExportFile is a rendered export ready to be served.
type ExportFile struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	Rows        int    `json:"rows"`
}
