package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

var propertyCmd = &cobra.Command{
	Use:     "property",
	Aliases: []string{"properties", "p"},
	Short:   "Manage property records",
}

var propertyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a property",
	Long: `Add a single property record. --property-type is required and must be
Kothi, Flat, Commercial or Plot. Flats also need --project.
--date defaults to today.

Example:
  propdesk property add --property-type Flat --project "Green Valley" \
    --bhk 3BHK --sector-phase "Sector 5" --demand "85 Lakh"`,
	Args: cobra.NoArgs,
	RunE: runPropertyAdd,
}

var propertyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List properties, newest first",
	Args:    cobra.NoArgs,
	RunE:    runPropertyList,
}

var propertyGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a property",
	Args:  cobra.ExactArgs(1),
	RunE:  runPropertyGet,
}

var propertyEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Update fields of a property",
	Long: `Update the fields given as flags. Pass an empty value to clear a field,
e.g. --cp-firm-name "". Changing --property-type changes which
type-specific fields are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runPropertyEdit,
}

var propertyDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a property",
	Args:    cobra.ExactArgs(1),
	RunE:    runPropertyDelete,
}

var propertyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show property counts",
	Args:  cobra.NoArgs,
	RunE:  runPropertyStats,
}

var (
	addValues  = map[domain.FieldKey]*string{}
	editValues = map[domain.FieldKey]*string{}

	listFilters domain.SearchFilters
	listType    string
	listJSON    bool
)

func init() {
	bindFieldFlags(propertyAddCmd, addValues)
	bindFieldFlags(propertyEditCmd, editValues)

	f := propertyListCmd.Flags()
	f.StringVarP(&listFilters.Term, "search", "s", "", "text matched against sector, CP name, contact, CP firm and project")
	f.StringVarP(&listType, "type", "t", "", "property type (Kothi, Flat, Commercial, Plot)")
	f.StringVar(&listFilters.SectorPhase, "sector", "", "exact sector/phase")
	f.StringVar(&listFilters.CPName, "cp", "", "exact CP name")
	f.StringVar(&listFilters.Project, "project", "", "exact project")
	f.StringVar(&listFilters.ContactNumber, "contact", "", "exact contact number")
	f.StringVar(&listFilters.MinDemand, "min-demand", "", "minimum demand, e.g. \"40 lakh\"")
	f.StringVar(&listFilters.MaxDemand, "max-demand", "", "maximum demand, e.g. \"1.5 crore\"")
	f.BoolVar(&listJSON, "json", false, "output as JSON")

	propertyCmd.AddCommand(propertyAddCmd)
	propertyCmd.AddCommand(propertyListCmd)
	propertyCmd.AddCommand(propertyGetCmd)
	propertyCmd.AddCommand(propertyEditCmd)
	propertyCmd.AddCommand(propertyDeleteCmd)
	propertyCmd.AddCommand(propertyStatsCmd)
	rootCmd.AddCommand(propertyCmd)
}

// bindFieldFlags registers one string flag per spreadsheet column.
func bindFieldFlags(cmd *cobra.Command, values map[domain.FieldKey]*string) {
	for _, col := range domain.Columns {
		v := new(string)
		values[col.Key] = v
		cmd.Flags().StringVar(v, flagName(col.Key), "", col.Header)
	}
}

// flagName converts a field key to a flag name: cpFirmName becomes cp-firm-name.
func flagName(key domain.FieldKey) string {
	var b strings.Builder
	for i, r := range key.String() {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func runPropertyAdd(cmd *cobra.Command, _ []string) error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}

	fields := domain.Fields{}
	for key, v := range addValues {
		fields.Set(key, strings.TrimSpace(*v))
	}
	if !fields.Has(domain.FieldDate) {
		fields.Set(domain.FieldDate, time.Now().Format(domain.DateLayout))
	}
	if _, ok := domain.ParsePropertyType(fields.Get(domain.FieldPropertyType)); !ok {
		return fmt.Errorf("%w: --property-type must be Kothi, Flat, Commercial or Plot", domain.ErrInvalidInput)
	}

	property, err := domain.NewPropertyFromFields(fields)
	if err != nil {
		return err
	}

	created, err := propertyService.Create(context.Background(), property)
	if err != nil {
		return fmt.Errorf("failed to add property: %w", err)
	}

	cmd.Println(ui.Success.Render(fmt.Sprintf("Added %s property %s", created.Type(), created.ID)))
	return nil
}

func runPropertyList(cmd *cobra.Command, _ []string) error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}

	filters := listFilters
	if listType != "" {
		pt, ok := domain.ParsePropertyType(listType)
		if !ok {
			return fmt.Errorf("%w: unknown property type %q", domain.ErrInvalidInput, listType)
		}
		filters.PropertyType = pt
	}

	properties, err := propertyService.Search(context.Background(), filters)
	if err != nil {
		return fmt.Errorf("failed to list properties: %w", err)
	}

	if listJSON {
		return outputPropertiesJSON(cmd, properties)
	}

	if len(properties) == 0 {
		cmd.Println("No properties found.")
		return nil
	}

	rows := make([][]string, len(properties))
	for i := range properties {
		p := &properties[i]
		rows[i] = []string{
			shortID(p.ID),
			p.Type().String(),
			identifier(p),
			p.Base.SectorPhase,
			p.Base.Demand,
			p.Base.CPName,
			p.Base.ContactNumber,
			p.Base.Date,
		}
	}
	cmd.Println(ui.Table(
		[]string{"ID", "Type", "Unit", "Sector/Phase", "Demand", "CP Name", "Contact", "Date"},
		rows,
	))
	cmd.Printf("%d properties\n", len(properties))
	return nil
}

// propertyJSON is the JSON shape of a stored property.
type propertyJSON struct {
	ID        string        `json:"id"`
	Type      string        `json:"propertyType"`
	Fields    domain.Fields `json:"fields"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func outputPropertiesJSON(cmd *cobra.Command, properties []domain.Property) error {
	out := make([]propertyJSON, len(properties))
	for i := range properties {
		p := &properties[i]
		out[i] = propertyJSON{
			ID:        p.ID,
			Type:      p.Type().String(),
			Fields:    p.Fields(),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func runPropertyGet(cmd *cobra.Command, args []string) error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}

	p, err := propertyService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get property: %w", err)
	}

	printProperty(cmd, p)
	return nil
}

func printProperty(cmd *cobra.Command, p *domain.Property) {
	cmd.Println(ui.Title.Render(fmt.Sprintf("%s property %s", p.Type(), p.ID)))

	fields := p.Fields()
	for _, col := range domain.Columns {
		if col.Key == domain.FieldPropertyType || !fields.Has(col.Key) {
			continue
		}
		cmd.Printf("  %s %s\n", ui.Label.Render(col.Header+":"), fields.Get(col.Key))
	}
	cmd.Println(ui.Muted.Render(fmt.Sprintf("  created %s, updated %s",
		p.CreatedAt.Local().Format(time.DateTime), p.UpdatedAt.Local().Format(time.DateTime))))
}

func runPropertyEdit(cmd *cobra.Command, args []string) error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}

	patch := domain.PropertyPatch{Fields: map[domain.FieldKey]string{}}
	for key, v := range editValues {
		if cmd.Flags().Changed(flagName(key)) {
			patch.Fields[key] = *v
		}
	}
	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to update, pass at least one field flag", domain.ErrInvalidInput)
	}

	updated, err := propertyService.Update(context.Background(), args[0], patch)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	printProperty(cmd, updated)
	return nil
}

func runPropertyDelete(cmd *cobra.Command, args []string) error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}

	if err := propertyService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	cmd.Printf("Deleted property %s\n", args[0])
	return nil
}

func runPropertyStats(cmd *cobra.Command, _ []string) error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}

	stats, err := propertyService.Stats(context.Background(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	cmd.Println(ui.Title.Render("Property Stats"))
	cmd.Printf("  Total: %d\n", stats.Total)
	for _, pt := range domain.PropertyTypes {
		cmd.Printf("  %s: %d\n", pt, stats.ByType[pt])
	}
	cmd.Printf("  Added this week: %d\n", stats.Recent)
	return nil
}

// identifier returns the unit identifier shown in listings.
func identifier(p *domain.Property) string {
	switch d := p.Details.(type) {
	case domain.KothiDetails:
		return d.KothiNumber
	case domain.PlotDetails:
		return d.PlotNumber
	case domain.FlatDetails:
		return strings.TrimSpace(d.Project + " " + d.BHK)
	case domain.CommercialDetails:
		return d.CommercialType
	default:
		return ""
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
