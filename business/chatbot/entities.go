package chatbot

import (
	"context"
	"regexp"
	"strings"
	"time"

	"eduPulse/domain"
	"eduPulse/pkg/logger"
)

// CourseCatalog serves the bounded candidate set of published course titles.
type CourseCatalog interface {
	ListPublishedTitles(ctx context.Context, limit int) ([]domain.CourseTitle, error)
}

// Date patterns are tested in order; the first match per pattern wins.
var datePatterns = []struct {
	dateType string
	re       *regexp.Regexp
}{
	{"today", regexp.MustCompile(`(?i)aujourd['’]hui|today`)},
	{"tomorrow", regexp.MustCompile(`(?i)demain|tomorrow`)},
	{"yesterday", regexp.MustCompile(`(?i)\bhier\b|yesterday`)},
	{"this_week", regexp.MustCompile(`(?i)cette semaine|this week`)},
	{"explicit", regexp.MustCompile(`(?i)\b\d{1,2}\s+(janvier|février|fevrier|mars|avril|mai|juin|juillet|août|aout|septembre|octobre|novembre|décembre|decembre)\b`)},
}

var numberRe = regexp.MustCompile(`\b\d+%?`)

// Fixed keyword to canonical action verb map. Detection is case-insensitive
// substring, all matches reported.
var actionKeywords = []struct {
	keyword string
	verb    string
}{
	{"montre", "show"},
	{"show", "show"},
	{"affiche", "display"},
	{"display", "display"},
	{"calcule", "calculate"},
	{"calculate", "calculate"},
	{"analyse", "analyze"},
	{"analyze", "analyze"},
	{"compare", "compare"},
	{"recommande", "recommend"},
	{"recommend", "recommend"},
	{"explique", "explain"},
	{"explain", "explain"},
}

// EntityExtractor pulls structured entities out of free text.
type EntityExtractor struct {
	catalog      CourseCatalog
	catalogLimit int
}

func NewEntityExtractor(catalog CourseCatalog, catalogLimit int) *EntityExtractor {
	if catalogLimit <= 0 {
		catalogLimit = 100
	}
	return &EntityExtractor{
		catalog:      catalog,
		catalogLimit: catalogLimit,
	}
}

// Extract never fails: a catalog lookup error degrades to no course
// entities and the remaining extractors still run.
func (e *EntityExtractor) Extract(ctx context.Context, message string) domain.EntitySet {
	out := domain.NewEntitySet()
	now := time.Now()
	lower := strings.ToLower(message)

	if e.catalog != nil {
		titles, err := e.catalog.ListPublishedTitles(ctx, e.catalogLimit)
		if err != nil {
			logger.Warn("course title lookup failed, skipping course entities", "error", err)
		}
		for _, t := range titles {
			if t.Title == "" {
				continue
			}
			// substring match keeps overlapping partial hits; short titles
			// can false-positive and callers tolerate that
			if strings.Contains(lower, strings.ToLower(t.Title)) {
				out.Courses = append(out.Courses, domain.CourseEntity{ID: t.ID, Title: t.Title})
			}
		}
	}

	for _, p := range datePatterns {
		raw := p.re.FindString(message)
		if raw == "" {
			continue
		}
		out.Dates = append(out.Dates, domain.DateEntity{
			Type:     p.dateType,
			RawValue: raw,
			Parsed:   ResolveDateISO(raw, now),
		})
	}

	out.Numbers = append(out.Numbers, numberRe.FindAllString(message, -1)...)

	for _, a := range actionKeywords {
		if strings.Contains(lower, a.keyword) {
			out.Actions = append(out.Actions, a.verb)
		}
	}

	return out
}
