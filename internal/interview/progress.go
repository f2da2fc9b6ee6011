package interview

import (
	"math"
	"strings"

	"github.com/khrees2412/tradecv/pkg/models"
)

// identityFieldCount is the number of scalar identity fields on a record.
const identityFieldCount = 5

// recordKeyCount is the number of top-level keys on a record.
const recordKeyCount = 10

// Progress computes the completion percentage of rec under the catalog's policy.
func (c *Catalog) Progress(rec models.ResumeRecord) int {
	var filled, total int

	switch c.policy {
	case ProgressFields:
		total = recordKeyCount
		filled = countNonBlank(rec.Name, rec.Title, rec.Email, rec.Phone, rec.Location)
		for _, n := range []int{
			len(rec.FilledSkills()),
			len(rec.Experience),
			len(rec.Education),
			len(rec.Certifications),
			len(rec.Languages),
		} {
			if n > 0 {
				filled++
			}
		}
	default:
		total = identityFieldCount + c.skillSlots
		filled = countNonBlank(rec.Name, rec.Title, rec.Email, rec.Phone, rec.Location)
		for i := 0; i < c.skillSlots && i < len(rec.Skills); i++ {
			if strings.TrimSpace(rec.Skills[i]) != "" {
				filled++
			}
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(filled) / float64(total)))
}

func countNonBlank(values ...string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}
