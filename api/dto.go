/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the pipeline's domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and the rule-config factory, not in
  DTOs. DTOs are pure data carriers.
*/
package api

import (
	"github.com/warp/voucher-engine/factory"
	"github.com/warp/voucher-engine/report"
)

// GenerateRequest asks for a monthly report.
type GenerateRequest struct {
	InputsDir    string                 `json:"inputs_dir"`
	Month        int                    `json:"month"`
	Year         int                    `json:"year"`
	OutputName   string                 `json:"output_name,omitempty"`
	TemplatePath string                 `json:"template_path,omitempty"`
	RuleConfig   factory.RuleConfigJSON `json:"rule_config"`
}

// GenerateResponse reports where the workbook landed and how it checked out.
type GenerateResponse struct {
	OutputPath string                   `json:"output_path"`
	Metrics    report.Metrics           `json:"metrics"`
	Validation *report.ValidationReport `json:"validation"`
}

// ValidateRequest asks for re-validation of a written report.
type ValidateRequest struct {
	OutputPath   string `json:"output_path"`
	TemplatePath string `json:"template_path"`
}

// SchemaDTO describes one input table's column contract.
type SchemaDTO struct {
	Table    string   `json:"table"`
	Required []string `json:"required"`
	Optional []string `json:"optional,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
