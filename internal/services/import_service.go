package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/techstock/engine/internal/models"
	"github.com/techstock/engine/internal/repository"
	appErr "github.com/techstock/engine/pkg/errors"
	"github.com/techstock/engine/pkg/logger"
	"go.uber.org/zap"
)

// ImportService loads a catalog export CSV into the store. Each row carries
// the resource itself plus the names of its subscription and resource group,
// and a JSON tag blob that also drives application linking and the vendor /
// environment / provisioner columns.
type ImportService interface {
	ImportCSV(ctx context.Context, path string) (*ImportReport, error)
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Records      int `json:"records"`
	Applications int `json:"applications"`
	Linked       int `json:"linked"`
}

type importService struct {
	resources     repository.ResourceRepository
	subscriptions repository.SubscriptionRepository
	groups        repository.ResourceGroupRepository
	applications  repository.ApplicationRepository
}

func NewImportService(
	resources repository.ResourceRepository,
	subscriptions repository.SubscriptionRepository,
	groups repository.ResourceGroupRepository,
	applications repository.ApplicationRepository,
) ImportService {
	return &importService{
		resources:     resources,
		subscriptions: subscriptions,
		groups:        groups,
		applications:  applications,
	}
}

var _ ImportService = (*importService)(nil)

type csvRow struct {
	name             string
	resourceType     string
	kind             string
	location         string
	subscription     string
	resourceGroup    string
	tags             string
	extendedLocation string
}

// importRun holds the get-or-create caches for a single run. They are never
// shared across runs, so a row deleted between imports cannot leave a stale
// id behind.
type importRun struct {
	subscriptions  map[string]int64
	resourceGroups map[string]int64
	applications   map[string]int64
}

func (s *importService) ImportCSV(ctx context.Context, path string) (*ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, fmt.Sprintf("cannot open csv file %s", path))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "cannot read csv header")
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	run := &importRun{
		subscriptions:  map[string]int64{},
		resourceGroups: map[string]int64{},
		applications:   map[string]int64{},
	}
	report := &ImportReport{}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, fmt.Sprintf("csv read failed at record %d", report.Records+1))
		}

		row := cols.row(record)
		if err := s.importRow(ctx, run, row, report); err != nil {
			return nil, err
		}

		report.Records++
		if report.Records%100 == 0 {
			logger.L().Info("import progress", zap.Int("records", report.Records))
		}
	}

	logger.L().Info("import completed",
		zap.Int("records", report.Records),
		zap.Int("applications", report.Applications),
		zap.Int("linked", report.Linked))
	return report, nil
}

func (s *importService) importRow(ctx context.Context, run *importRun, row csvRow, report *ImportReport) error {
	tags, err := parseTagBlob(row.tags)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, fmt.Sprintf("invalid tag blob for resource %s", row.name))
	}

	subscriptionID, err := s.subscriptionID(ctx, run, row.subscription)
	if err != nil {
		return err
	}
	groupID, err := s.resourceGroupID(ctx, run, row.resourceGroup, subscriptionID)
	if err != nil {
		return err
	}

	var applicationID *int64
	if code, ok := tags["AppID"]; ok {
		id, created, err := s.applicationID(ctx, run, code, tags)
		if err != nil {
			return err
		}
		if created {
			report.Applications++
		}
		applicationID = &id
	}

	r := &models.Resource{
		Name:             row.name,
		Type:             row.resourceType,
		Kind:             optional(row.kind),
		Location:         row.location,
		SubscriptionID:   subscriptionID,
		ResourceGroupID:  groupID,
		ExtendedLocation: optional(row.extendedLocation),
		Vendor:           tagValue(tags, "Vendor"),
		Environment:      tagValue(tags, "Environment"),
		Provisioner:      tagValue(tags, "Provisioner"),
	}
	if err := r.SetTags(tags); err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "encode tags failed")
	}
	if err := s.resources.Create(ctx, r); err != nil {
		return err
	}
	if err := s.resources.UpsertTags(ctx, r.ID, tags); err != nil {
		return err
	}

	if applicationID != nil {
		if err := s.applications.LinkResource(ctx, r.ID, *applicationID, "uses"); err != nil {
			return err
		}
		report.Linked++
	}
	return nil
}

func (s *importService) subscriptionID(ctx context.Context, run *importRun, name string) (int64, error) {
	if id, ok := run.subscriptions[name]; ok {
		return id, nil
	}
	existing, err := s.subscriptions.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		run.subscriptions[name] = existing.ID
		return existing.ID, nil
	}
	sub := &models.Subscription{Name: name}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return 0, err
	}
	run.subscriptions[name] = sub.ID
	return sub.ID, nil
}

func (s *importService) resourceGroupID(ctx context.Context, run *importRun, name string, subscriptionID int64) (int64, error) {
	key := fmt.Sprintf("%d/%s", subscriptionID, name)
	if id, ok := run.resourceGroups[key]; ok {
		return id, nil
	}
	existing, err := s.groups.GetByNameAndSubscription(ctx, name, subscriptionID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		run.resourceGroups[key] = existing.ID
		return existing.ID, nil
	}
	g := &models.ResourceGroup{Name: name, SubscriptionID: subscriptionID}
	if err := s.groups.Create(ctx, g); err != nil {
		return 0, err
	}
	run.resourceGroups[key] = g.ID
	return g.ID, nil
}

// applicationID resolves the tag-derived application, creating it on first
// sight with name and owner email pulled from the companion tags.
func (s *importService) applicationID(ctx context.Context, run *importRun, code string, tags map[string]string) (int64, bool, error) {
	if id, ok := run.applications[code]; ok {
		return id, false, nil
	}
	existing, err := s.applications.GetByCode(ctx, code)
	if err != nil {
		return 0, false, err
	}
	if existing != nil {
		run.applications[code] = existing.ID
		return existing.ID, false, nil
	}

	ownerEmail := tagValue(tags, "AdminName")
	if ownerEmail == nil {
		ownerEmail = tagValue(tags, "AdminName1")
	}
	if ownerEmail == nil {
		ownerEmail = tagValue(tags, "AdminName2")
	}

	a := &models.Application{
		Code:       &code,
		Name:       tagValue(tags, "AppName"),
		OwnerEmail: ownerEmail,
	}
	if err := s.applications.Create(ctx, a); err != nil {
		return 0, false, err
	}
	run.applications[code] = a.ID
	return a.ID, true, nil
}

// parseTagBlob decodes the exported tag column. The literal "null" and the
// empty string mean no tags. Non-string values are kept as their JSON text.
func parseTagBlob(blob string) (map[string]string, error) {
	tags := map[string]string{}
	if blob == "" || blob == "null" {
		return tags, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, err
	}
	for key, value := range raw {
		var str string
		if err := json.Unmarshal(value, &str); err == nil {
			tags[key] = str
			continue
		}
		if string(value) == "null" {
			continue
		}
		tags[key] = string(value)
	}
	return tags, nil
}

type columnIndex struct {
	name, resourceType, kind, location, subscription, resourceGroup, tags, extendedLocation int
}

// mapColumns resolves header names to positions. Name, Type, Location,
// Subscription, and Resource group are required; the rest default to empty
// when the column is absent.
func mapColumns(header []string) (*columnIndex, error) {
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	cols := &columnIndex{
		name:             -1,
		resourceType:     -1,
		kind:             -1,
		location:         -1,
		subscription:     -1,
		resourceGroup:    -1,
		tags:             -1,
		extendedLocation: -1,
	}
	required := map[string]*int{
		"Name":           &cols.name,
		"Type":           &cols.resourceType,
		"Location":       &cols.location,
		"Subscription":   &cols.subscription,
		"Resource group": &cols.resourceGroup,
	}
	for name, target := range required {
		i, ok := idx[name]
		if !ok {
			return nil, appErr.InvalidInput(fmt.Sprintf("csv is missing required column %q", name))
		}
		*target = i
	}
	if i, ok := idx["kind"]; ok {
		cols.kind = i
	}
	if i, ok := idx["Tags"]; ok {
		cols.tags = i
	}
	if i, ok := idx["extendedLocation"]; ok {
		cols.extendedLocation = i
	}
	return cols, nil
}

func (c *columnIndex) row(record []string) csvRow {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return record[i]
	}
	return csvRow{
		name:             field(c.name),
		resourceType:     field(c.resourceType),
		kind:             field(c.kind),
		location:         field(c.location),
		subscription:     field(c.subscription),
		resourceGroup:    field(c.resourceGroup),
		tags:             field(c.tags),
		extendedLocation: field(c.extendedLocation),
	}
}

// optional maps the export's empty-ish markers to NULL.
func optional(v string) *string {
	if v == "" || v == "null" {
		return nil
	}
	return &v
}

func tagValue(tags map[string]string, key string) *string {
	if v, ok := tags[key]; ok {
		return &v
	}
	return nil
}
