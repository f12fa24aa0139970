package transport

import (
	"numbering_backend/internal/numbering/registry"
	"numbering_backend/internal/numbering/service"
	"numbering_backend/platform/phone"
	"numbering_backend/platform/sanitize"
)

// ValidateRequest checks a national number against one territory. An empty
// territory falls back to the configured default.
type ValidateRequest struct {
	Number    string `json:"number" validate:"max=64"`
	Territory string `json:"territory" validate:"omitempty,territory_code"`
}

// ValidateCompleteRequest checks a "+<calling code><number>" string.
type ValidateCompleteRequest struct {
	Number string `json:"number" validate:"max=64"`
}

// SearchTerritoriesRequest drives the territory picker.
type SearchTerritoriesRequest struct {
	Query string `form:"q" validate:"max=64"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=500"`
}

// TerritoryInput is one record in a bulk update.
type TerritoryInput struct {
	Code        string `json:"code" validate:"required,territory_code"`
	Name        string `json:"name" validate:"required,max=100"`
	CallingCode string `json:"callingCode" validate:"required,calling_code"`
	Pattern     string `json:"pattern" validate:"required,max=512"`
	Example     string `json:"example" validate:"required,max=32"`
	Glyph       string `json:"glyph,omitempty" validate:"omitempty,max=16"`
	Trunk       string `json:"trunk,omitempty" validate:"omitempty,oneof=none drop keep"`
}

// BulkTerritoriesRequest replaces or extends the registry.
type BulkTerritoriesRequest struct {
	Territories []TerritoryInput `json:"territories" validate:"required,min=1,max=1000,dive"`
}

// Records converts the request into registry records. Names are sanitized;
// everything else is checked by the registry.
func (r BulkTerritoriesRequest) Records() []registry.CountryRecord {
	out := make([]registry.CountryRecord, len(r.Territories))
	for i, t := range r.Territories {
		out[i] = registry.CountryRecord{
			Code:        t.Code,
			Name:        sanitize.Text(t.Name),
			CallingCode: t.CallingCode,
			Pattern:     t.Pattern,
			Example:     t.Example,
			Glyph:       t.Glyph,
			Trunk:       registry.Trunk(t.Trunk),
		}
	}
	return out
}

// TerritoryResponse represents a territory in API responses.
type TerritoryResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CallingCode string `json:"callingCode"`
	Example     string `json:"example"`
	Pattern     string `json:"pattern"`
	Glyph       string `json:"glyph,omitempty"`
	Trunk       string `json:"trunk"`
}

// TerritoryListResponse wraps a list of territories.
type TerritoryListResponse struct {
	Items   []TerritoryResponse `json:"items"`
	Total   int                 `json:"total"`
	Version int64               `json:"version"`
}

// ValidationResponse is returned for both validation modes. An invalid number
// is a normal response, not a transport error.
type ValidationResponse struct {
	IsValid         bool               `json:"isValid"`
	FormattedNumber string             `json:"formattedNumber"`
	Display         string             `json:"display,omitempty"`
	Groups          []service.Group    `json:"groups,omitempty"`
	E164            string             `json:"e164,omitempty"`
	Country         *TerritoryResponse `json:"country,omitempty"`
	Error           string             `json:"error,omitempty"`
	ErrorKind       string             `json:"errorKind,omitempty"`
	Suggestions     []string           `json:"suggestions,omitempty"`
}

// BulkTerritoriesResponse reports the snapshot a bulk update produced.
type BulkTerritoriesResponse struct {
	Version int64 `json:"version"`
	Size    int   `json:"size"`
}

// ToTerritoryResponse maps a registry record.
func ToTerritoryResponse(rec registry.CountryRecord) TerritoryResponse {
	return TerritoryResponse{
		Code:        rec.Code,
		Name:        rec.Name,
		CallingCode: rec.CallingCode,
		Example:     rec.Example,
		Pattern:     rec.Pattern,
		Glyph:       rec.Glyph,
		Trunk:       string(rec.TrunkConvention()),
	}
}

// ToTerritoryList maps records in the given order.
func ToTerritoryList(records []registry.CountryRecord, version int64) TerritoryListResponse {
	items := make([]TerritoryResponse, len(records))
	for i, rec := range records {
		items[i] = ToTerritoryResponse(rec)
	}
	return TerritoryListResponse{Items: items, Total: len(items), Version: version}
}

// ToValidationResponse maps an engine result. raw is the number as the caller
// sent it; suggestions are computed from it for pattern mismatches.
func ToValidationResponse(result service.ValidationResult, raw string) ValidationResponse {
	resp := ValidationResponse{
		IsValid:         result.IsValid,
		FormattedNumber: result.FormattedNumber,
		Error:           result.Error,
		ErrorKind:       string(result.Kind),
	}
	if result.Country == nil {
		return resp
	}

	rec := *result.Country
	country := ToTerritoryResponse(rec)
	resp.Country = &country

	if result.IsValid {
		if groups, ok := service.FormatGroups(result.National, rec); ok {
			resp.Groups = groups
			resp.Display = service.Format(result.National, rec)
		}
		if e164, ok := phone.E164(result.National, rec.Code); ok {
			resp.E164 = e164
		}
		return resp
	}

	if result.Kind == service.KindPatternMismatch {
		resp.Suggestions = service.Suggest(nationalPart(raw, rec), rec)
	}
	return resp
}

// nationalPart strips the territory's calling code from a complete number so
// hints are computed on the national digits.
func nationalPart(raw string, rec registry.CountryRecord) string {
	normalized := phone.Normalize(raw)
	if len(normalized) > len(rec.CallingCode) && normalized[:len(rec.CallingCode)] == rec.CallingCode {
		return normalized[len(rec.CallingCode):]
	}
	return normalized
}
