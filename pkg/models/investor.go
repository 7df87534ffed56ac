package models

import (
	"time"
)

// Investor is an individual investor profile, optionally linked to a parent
// firm. The scorer unions investor and firm signals before comparing.
type Investor struct {
	ID                string     `json:"id" db:"id"`
	FirmID            *string    `json:"firm_id,omitempty" db:"firm_id"`
	Name              string     `json:"name" db:"name"`
	Location          *string    `json:"location,omitempty" db:"location"`
	Sectors           StringList `json:"sectors" db:"sectors"`
	Stages            StringList `json:"stages" db:"stages"`
	FundingStage      *string    `json:"funding_stage,omitempty" db:"funding_stage"`
	InvestorType      *string    `json:"investor_type,omitempty" db:"investor_type"`
	CheckSizeMin      *float64   `json:"check_size_min,omitempty" db:"check_size_min"`
	CheckSizeMax      *float64   `json:"check_size_max,omitempty" db:"check_size_max"`
	TypicalInvestment *string    `json:"typical_investment,omitempty" db:"typical_investment"`
	IsActive          bool       `json:"is_active" db:"is_active"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// InvestmentFirm aggregates multiple investors under one fund
type InvestmentFirm struct {
	ID               string     `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	Location         *string    `json:"location,omitempty" db:"location"`
	Sectors          StringList `json:"sectors" db:"sectors"`
	Stages           StringList `json:"stages" db:"stages"`
	FirmType         *string    `json:"firm_type,omitempty" db:"firm_type"`
	CheckSizeMin     *float64   `json:"check_size_min,omitempty" db:"check_size_min"`
	CheckSizeMax     *float64   `json:"check_size_max,omitempty" db:"check_size_max"`
	TypicalCheckSize *string    `json:"typical_check_size,omitempty" db:"typical_check_size"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateInvestorRequest is the request to create an investor
type CreateInvestorRequest struct {
	FirmID            *string  `json:"firm_id,omitempty"`
	Name              string   `json:"name" validate:"required"`
	Location          *string  `json:"location,omitempty"`
	Sectors           []string `json:"sectors,omitempty"`
	Stages            []string `json:"stages,omitempty"`
	FundingStage      *string  `json:"funding_stage,omitempty"`
	InvestorType      *string  `json:"investor_type,omitempty"`
	CheckSizeMin      *float64 `json:"check_size_min,omitempty" validate:"omitempty,gte=0"`
	CheckSizeMax      *float64 `json:"check_size_max,omitempty" validate:"omitempty,gte=0"`
	TypicalInvestment *string  `json:"typical_investment,omitempty"`
	IsActive          *bool    `json:"is_active,omitempty"`
}

// UpdateInvestorRequest is the request to update an investor
type UpdateInvestorRequest struct {
	FirmID            *string  `json:"firm_id,omitempty"`
	Name              *string  `json:"name,omitempty"`
	Location          *string  `json:"location,omitempty"`
	Sectors           []string `json:"sectors,omitempty"`
	Stages            []string `json:"stages,omitempty"`
	FundingStage      *string  `json:"funding_stage,omitempty"`
	InvestorType      *string  `json:"investor_type,omitempty"`
	CheckSizeMin      *float64 `json:"check_size_min,omitempty" validate:"omitempty,gte=0"`
	CheckSizeMax      *float64 `json:"check_size_max,omitempty" validate:"omitempty,gte=0"`
	TypicalInvestment *string  `json:"typical_investment,omitempty"`
	IsActive          *bool    `json:"is_active,omitempty"`
}

// CreateFirmRequest is the request to create an investment firm
type CreateFirmRequest struct {
	Name             string   `json:"name" validate:"required"`
	Location         *string  `json:"location,omitempty"`
	Sectors          []string `json:"sectors,omitempty"`
	Stages           []string `json:"stages,omitempty"`
	FirmType         *string  `json:"firm_type,omitempty"`
	CheckSizeMin     *float64 `json:"check_size_min,omitempty" validate:"omitempty,gte=0"`
	CheckSizeMax     *float64 `json:"check_size_max,omitempty" validate:"omitempty,gte=0"`
	TypicalCheckSize *string  `json:"typical_check_size,omitempty"`
}

// UpdateFirmRequest is the request to update an investment firm
type UpdateFirmRequest struct {
	Name             *string  `json:"name,omitempty"`
	Location         *string  `json:"location,omitempty"`
	Sectors          []string `json:"sectors,omitempty"`
	Stages           []string `json:"stages,omitempty"`
	FirmType         *string  `json:"firm_type,omitempty"`
	CheckSizeMin     *float64 `json:"check_size_min,omitempty" validate:"omitempty,gte=0"`
	CheckSizeMax     *float64 `json:"check_size_max,omitempty" validate:"omitempty,gte=0"`
	TypicalCheckSize *string  `json:"typical_check_size,omitempty"`
}
