package classify

import "strings"

// Region is the coarse administrative classification of a record.
type Region string

// Region values.
const (
	RegionCentral   Region = "central"
	RegionKaohsiung Region = "kaohsiung"
	RegionTaipei    Region = "taipei"
	RegionNewTaipei Region = "newTaipei"
	RegionOther     Region = "other"
)

// Regions lists every region tag.
var Regions = []Region{RegionCentral, RegionKaohsiung, RegionTaipei, RegionNewTaipei, RegionOther}

// ValidRegion reports whether r is a known region tag.
func ValidRegion(r Region) bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

// Keywords that pin a record to a region before any geography matching. The
// committee is a Kaohsiung body; the science-park authorities are central
// agencies even though their names carry city prefixes.
const (
	committeeKeyword   = "法規研究委員會"
	reportKeyword      = "座談會工作報告"
	scienceParkKeyword = "科學園區管理局"
)

// regionRule maps keyword hits in issuer (or subject, when the issuer is
// empty) to a region. Order is load-bearing: central-government keywords are
// matched before city names.
type regionRule struct {
	region   Region
	keywords []string
}

var regionRules = []regionRule{
	{RegionCentral, []string{"內政部", "國土管理署", "行政院", "經濟部", "中央", "中華民國全國建築師公會", "環境部"}},
	{RegionKaohsiung, []string{"高雄"}},
	{RegionTaipei, []string{"臺北", "台北"}},
	{RegionNewTaipei, []string{"新北"}},
}

var cityOrCountyKeywords = []string{
	"臺北市", "台北市", "新北市", "高雄市", "臺中市", "台中市", "臺南市", "台南市",
	"基隆市", "桃園市", "新竹市", "嘉義市",
	"新竹縣", "苗栗縣", "彰化縣", "南投縣", "雲林縣", "嘉義縣", "屏東縣",
	"宜蘭縣", "花蓮縣", "臺東縣", "台東縣", "澎湖縣", "金門縣", "連江縣",
}

// priorityIssuers are flagged in the view layer; more specific names first.
var priorityIssuers = []string{"內政部國土管理署", "內政部"}

// DetectRegion infers the region tag from issuer and subject text. The match
// order resolves ambiguity in favor of the specific committee and
// science-park cases before generic geography keywords; a record with no
// regional marker at all is treated as central (national issuer).
func DetectRegion(issuer, subject string) Region {
	issuer = strings.TrimSpace(issuer)
	subject = strings.TrimSpace(subject)

	if subject != "" &&
		strings.Contains(subject, committeeKeyword) &&
		strings.Contains(subject, reportKeyword) {
		return RegionKaohsiung
	}
	if strings.Contains(issuer, committeeKeyword) || strings.Contains(subject, committeeKeyword) {
		return RegionKaohsiung
	}
	if strings.Contains(issuer, scienceParkKeyword) || strings.Contains(subject, scienceParkKeyword) {
		return RegionCentral
	}

	if region, ok := matchRules(issuer); ok {
		return region
	}
	if issuer == "" {
		if region, ok := matchRules(subject); ok {
			return region
		}
	}

	if !containsAny(issuer, cityOrCountyKeywords) && !containsAny(subject, cityOrCountyKeywords) {
		return RegionCentral
	}
	return RegionOther
}

// PriorityIssuer returns the matched priority-issuer label, or "" when the
// issuer is not flagged.
func PriorityIssuer(issuer string) string {
	if issuer == "" {
		return ""
	}
	for _, name := range priorityIssuers {
		if strings.Contains(issuer, name) {
			return name
		}
	}
	return ""
}

func matchRules(text string) (Region, bool) {
	if text == "" {
		return "", false
	}
	for _, rule := range regionRules {
		if containsAny(text, rule.keywords) {
			return rule.region, true
		}
	}
	return "", false
}

func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
