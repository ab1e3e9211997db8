package models

import "time"

// Calibration freshness states reported by SessionMetadata.CalibrationStatus.
const (
	CalibrationValid        = "valid"
	CalibrationExpiringSoon = "expiring_soon"
	CalibrationExpired      = "expired"
	CalibrationUnknown      = "unknown"
)

// calibrationWarningDays is how far ahead a calibration end date counts
// as expiring soon.
const calibrationWarningDays = 30

// SessionMetadata is the extended setup record entered before a run:
// product information, software versions and device calibration end dates.
// The engine treats it as opaque; it is carried into snapshots and exports.
// Station and SIP code are shown in the UI header but excluded from reports.
type SessionMetadata struct {
	// Product information
	StockNumber         string `json:"stok_no"`
	OptionalStockNumber string `json:"opsiyonel_stok_no"`
	Description         string `json:"tanim"`
	TEUUDK              string `json:"teu_udk"`
	SerialNumber        string `json:"seri_no"`
	Revision261         string `json:"revizyon_261"`
	TestHardwareRev     string `json:"test_donanimi_revizyon"`
	TestSoftwareRev     string `json:"test_yazilimi_revizyon"`
	WorkTypeNumber      string `json:"is_tipi_no"`

	// Software information
	KAYSoftwareVersion string `json:"kay_yazilimi_versiyon"`
	SKYSoftwareVersion string `json:"sky_yazilimi_versiyon"`

	// Device calibration end dates (ISO date strings, YYYY-MM-DD)
	FlukeESA620Calibration     string `json:"fluke_esa620_kalibrasyon"`
	Italsea7ProGLCDCalibration string `json:"italsea_7proglcd_kalibrasyon"`
	GeratechCalibration        string `json:"geratech_kalibrasyon"`
	IBAMagicMaxCalibration     string `json:"iba_magicmax_kalibrasyon"`
	IBAPrimusACalibration      string `json:"iba_primus_a_kalibrasyon"`

	// Session info, UI header only
	Station string `json:"istasyon"`
	SIPCode string `json:"sip_code"`
}

// CalibrationStatus classifies a calibration end date against today.
func (m *SessionMetadata) CalibrationStatus(endDate string, today time.Time) string {
	if endDate == "" {
		return CalibrationUnknown
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return CalibrationUnknown
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if end.Before(day) {
		return CalibrationExpired
	}
	if end.Before(day.AddDate(0, 0, calibrationWarningDays)) {
		return CalibrationExpiringSoon
	}
	return CalibrationValid
}

// ReportFields returns the metadata fields that belong in reports,
// excluding the UI-only station and SIP code.
func (m *SessionMetadata) ReportFields() map[string]string {
	return map[string]string{
		"stok_no":                      m.StockNumber,
		"opsiyonel_stok_no":            m.OptionalStockNumber,
		"tanim":                        m.Description,
		"teu_udk":                      m.TEUUDK,
		"seri_no":                      m.SerialNumber,
		"revizyon_261":                 m.Revision261,
		"test_donanimi_revizyon":       m.TestHardwareRev,
		"test_yazilimi_revizyon":       m.TestSoftwareRev,
		"is_tipi_no":                   m.WorkTypeNumber,
		"kay_yazilimi_versiyon":        m.KAYSoftwareVersion,
		"sky_yazilimi_versiyon":        m.SKYSoftwareVersion,
		"fluke_esa620_kalibrasyon":     m.FlukeESA620Calibration,
		"italsea_7proglcd_kalibrasyon": m.Italsea7ProGLCDCalibration,
		"geratech_kalibrasyon":         m.GeratechCalibration,
		"iba_magicmax_kalibrasyon":     m.IBAMagicMaxCalibration,
		"iba_primus_a_kalibrasyon":     m.IBAPrimusACalibration,
	}
}
