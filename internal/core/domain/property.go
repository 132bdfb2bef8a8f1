package domain

import (
	"fmt"
	"strings"
	"time"
)

// PropertyType is the discriminator of a Property.
type PropertyType string

// The four canonical property types.
const (
	PropertyTypeKothi      PropertyType = "Kothi"
	PropertyTypeFlat       PropertyType = "Flat"
	PropertyTypeCommercial PropertyType = "Commercial"
	PropertyTypePlot       PropertyType = "Plot"
)

// PropertyTypes lists the canonical types in display order.
var PropertyTypes = []PropertyType{
	PropertyTypeKothi,
	PropertyTypeFlat,
	PropertyTypeCommercial,
	PropertyTypePlot,
}

// IsValid returns true if the type is one of the canonical labels.
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeKothi, PropertyTypeFlat, PropertyTypeCommercial, PropertyTypePlot:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t PropertyType) String() string {
	return string(t)
}

// ParsePropertyType canonicalises a raw label. Matching is case-insensitive
// and ignores surrounding whitespace. Unknown labels are returned unchanged
// with ok=false.
func ParsePropertyType(raw string) (PropertyType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "kothi":
		return PropertyTypeKothi, true
	case "flat":
		return PropertyTypeFlat, true
	case "commercial":
		return PropertyTypeCommercial, true
	case "plot":
		return PropertyTypePlot, true
	default:
		return PropertyType(raw), false
	}
}

// Base holds the fields shared by every property variant.
type Base struct {
	SectorPhase   string
	PlotSize      string
	Marla         string
	PLC           string
	Road          string
	Facing        string
	Demand        string
	Expectations  string
	CPName        string
	ContactNumber string
	CPFirmName    string

	// Date is a calendar date, formatted 2006-01-02.
	Date string
}

// Details carries the variant-only fields of a property.
// The set of implementations is closed: KothiDetails, FlatDetails,
// CommercialDetails and PlotDetails.
type Details interface {
	// Type returns the discriminator for this variant.
	Type() PropertyType

	details()
}

// KothiDetails holds Kothi-only fields.
type KothiDetails struct {
	KothiNumber string
}

// PlotDetails holds Plot-only fields.
type PlotDetails struct {
	PlotNumber string
}

// FlatDetails holds Flat-only fields. Project is expected to be non-empty.
type FlatDetails struct {
	Project string
	Floor   string
	BHK     string
}

// CommercialDetails holds Commercial-only fields, all optional.
type CommercialDetails struct {
	CommercialType string
	Area           string
	Floor          string
}

// Type implements Details.
func (KothiDetails) Type() PropertyType { return PropertyTypeKothi }

// Type implements Details.
func (PlotDetails) Type() PropertyType { return PropertyTypePlot }

// Type implements Details.
func (FlatDetails) Type() PropertyType { return PropertyTypeFlat }

// Type implements Details.
func (CommercialDetails) Type() PropertyType { return PropertyTypeCommercial }

func (KothiDetails) details()      {}
func (PlotDetails) details()       {}
func (FlatDetails) details()       {}
func (CommercialDetails) details() {}

// Property is a property listing.
type Property struct {
	// ID is assigned by the store. Empty until persisted.
	ID string

	// Base holds the shared fields.
	Base Base

	// Details holds the variant-only fields and determines the type.
	Details Details

	// CreatedAt is set by the store when the record is first added.
	CreatedAt time.Time

	// UpdatedAt is refreshed by the store on every accepted mutation.
	UpdatedAt time.Time
}

// Type returns the property's discriminator, or "" when Details is unset.
func (p *Property) Type() PropertyType {
	if p.Details == nil {
		return ""
	}
	return p.Details.Type()
}

// Project returns the project name for Flat properties and "" otherwise.
func (p *Property) Project() string {
	if flat, ok := p.Details.(FlatDetails); ok {
		return flat.Project
	}
	return ""
}

// Fields flattens the property into a field bag. Identity and timestamps
// are not included.
func (p *Property) Fields() Fields {
	f := Fields{}
	f.Set(FieldSectorPhase, p.Base.SectorPhase)
	f.Set(FieldPlotSize, p.Base.PlotSize)
	f.Set(FieldMarla, p.Base.Marla)
	f.Set(FieldPLC, p.Base.PLC)
	f.Set(FieldRoad, p.Base.Road)
	f.Set(FieldFacing, p.Base.Facing)
	f.Set(FieldDemand, p.Base.Demand)
	f.Set(FieldExpectations, p.Base.Expectations)
	f.Set(FieldCPName, p.Base.CPName)
	f.Set(FieldContactNumber, p.Base.ContactNumber)
	f.Set(FieldCPFirmName, p.Base.CPFirmName)
	f.Set(FieldDate, p.Base.Date)

	switch d := p.Details.(type) {
	case KothiDetails:
		f.Set(FieldKothiNumber, d.KothiNumber)
	case PlotDetails:
		f.Set(FieldPlotNumber, d.PlotNumber)
	case FlatDetails:
		f.Set(FieldProject, d.Project)
		f.Set(FieldFloor, d.Floor)
		f.Set(FieldBHK, d.BHK)
	case CommercialDetails:
		f.Set(FieldCommercialType, d.CommercialType)
		f.Set(FieldArea, d.Area)
		f.Set(FieldFloor, d.Floor)
	case nil:
		return f
	}
	f.Set(FieldPropertyType, p.Details.Type().String())
	return f
}

// NewPropertyFromFields builds a property from a field bag. The property
// type must be canonical. Fields that do not belong to the resulting
// variant are ignored.
func NewPropertyFromFields(f Fields) (Property, error) {
	pt, ok := ParsePropertyType(f.Get(FieldPropertyType))
	if !ok {
		return Property{}, fmt.Errorf("%w: invalid property type %q", ErrInvalidInput, f.Get(FieldPropertyType))
	}

	p := Property{
		Base: Base{
			SectorPhase:   f.Get(FieldSectorPhase),
			PlotSize:      f.Get(FieldPlotSize),
			Marla:         f.Get(FieldMarla),
			PLC:           f.Get(FieldPLC),
			Road:          f.Get(FieldRoad),
			Facing:        f.Get(FieldFacing),
			Demand:        f.Get(FieldDemand),
			Expectations:  f.Get(FieldExpectations),
			CPName:        f.Get(FieldCPName),
			ContactNumber: f.Get(FieldContactNumber),
			CPFirmName:    f.Get(FieldCPFirmName),
			Date:          f.Get(FieldDate),
		},
	}

	switch pt {
	case PropertyTypeKothi:
		p.Details = KothiDetails{KothiNumber: f.Get(FieldKothiNumber)}
	case PropertyTypePlot:
		p.Details = PlotDetails{PlotNumber: f.Get(FieldPlotNumber)}
	case PropertyTypeFlat:
		p.Details = FlatDetails{
			Project: f.Get(FieldProject),
			Floor:   f.Get(FieldFloor),
			BHK:     f.Get(FieldBHK),
		}
	case PropertyTypeCommercial:
		p.Details = CommercialDetails{
			CommercialType: f.Get(FieldCommercialType),
			Area:           f.Get(FieldArea),
			Floor:          f.Get(FieldFloor),
		}
	}
	return p, nil
}

// PropertyPatch is a partial update. Present keys overwrite the stored
// value; keys mapped to "" clear it. Changing FieldPropertyType changes
// the variant.
type PropertyPatch struct {
	Fields map[FieldKey]string
}

// Apply returns a copy of p with the patch applied. Identity and
// timestamps are preserved.
func (pp PropertyPatch) Apply(p Property) (Property, error) {
	merged := p.Fields()
	for k, v := range pp.Fields {
		merged.Set(k, strings.TrimSpace(v))
	}

	next, err := NewPropertyFromFields(merged)
	if err != nil {
		return Property{}, err
	}
	next.ID = p.ID
	next.CreatedAt = p.CreatedAt
	next.UpdatedAt = p.UpdatedAt
	return next, nil
}

// IsEmpty reports whether the patch changes nothing.
func (pp PropertyPatch) IsEmpty() bool {
	return len(pp.Fields) == 0
}
