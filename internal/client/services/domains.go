package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophconsole/internal/client/client"
	"github.com/dmitrijs2005/gophconsole/internal/logging"
)

const domainsPath = "/api/dnspod/domains"

// DefaultSuffixes is what AvailableSuffixes falls back to.
var DefaultSuffixes = []string{".com", ".cn", ".net", ".org", ".info"}

type DomainTag struct {
	TagKey   string `json:"TagKey"`
	TagValue string `json:"TagValue"`
}

// DomainInfo is one DNSPod domain as relayed by the backend.
type DomainInfo struct {
	DomainID     int64       `json:"DomainId"`
	Name         string      `json:"Name"`
	Punycode     string      `json:"Punycode"`
	Status       string      `json:"Status"`
	DNSStatus    string      `json:"DNSStatus"`
	Grade        string      `json:"Grade"`
	GradeLevel   int         `json:"GradeLevel"`
	GradeTitle   string      `json:"GradeTitle"`
	GroupID      int64       `json:"GroupId"`
	IsVip        string      `json:"IsVip"`
	Owner        string      `json:"Owner"`
	RecordCount  int         `json:"RecordCount"`
	Remark       string      `json:"Remark"`
	TTL          int         `json:"TTL"`
	CNAMESpeedup string      `json:"CNAMESpeedup"`
	EffectiveDNS []string    `json:"EffectiveDNS"`
	CreatedOn    string      `json:"CreatedOn"`
	UpdatedOn    string      `json:"UpdatedOn"`
	VipStartAt   string      `json:"VipStartAt"`
	VipEndAt     string      `json:"VipEndAt"`
	VipAutoRenew string      `json:"VipAutoRenew"`
	TagList      []DomainTag `json:"TagList"`
}

type DomainCountInfo struct {
	AllTotal      int `json:"AllTotal"`
	DomainTotal   int `json:"DomainTotal"`
	ErrorTotal    int `json:"ErrorTotal"`
	GroupTotal    int `json:"GroupTotal"`
	LockTotal     int `json:"LockTotal"`
	MineTotal     int `json:"MineTotal"`
	PauseTotal    int `json:"PauseTotal"`
	ShareOutTotal int `json:"ShareOutTotal"`
	ShareTotal    int `json:"ShareTotal"`
	SpamTotal     int `json:"SpamTotal"`
	VipExpire     int `json:"VipExpire"`
	VipTotal      int `json:"VipTotal"`
}

type DomainList struct {
	CountInfo DomainCountInfo `json:"DomainCountInfo"`
	Domains   []DomainInfo    `json:"domainList"`
	RequestID string          `json:"RequestId"`
}

// DomainListParams filters List. Zero values are not sent.
type DomainListParams struct {
	Type    string
	Offset  int
	Limit   int
	GroupID int64
	Keyword string
}

func (p DomainListParams) query() url.Values {
	q := url.Values{}
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.GroupID != 0 {
		q.Set("groupId", strconv.FormatInt(p.GroupID, 10))
	}
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	return q
}

type DomainService interface {
	List(ctx context.Context, params DomainListParams) (*DomainList, error)
	// AvailableSuffixes returns the distinct suffixes of the account's
	// domains in first-seen order, or DefaultSuffixes when there are none or
	// the list cannot be fetched.
	AvailableSuffixes(ctx context.Context) []string
}

type domainService struct {
	api API
	log logging.Logger
}

func NewDomainService(api API, log logging.Logger) DomainService {
	return &domainService{api: api, log: log}
}

func (s *domainService) List(ctx context.Context, params DomainListParams) (*DomainList, error) {
	var out DomainList
	if err := s.api.Get(ctx, domainsPath, &out, client.WithQuery(params.query())); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *domainService) AvailableSuffixes(ctx context.Context) []string {
	list, err := s.List(ctx, DomainListParams{})
	if err != nil {
		s.log.Warn(ctx, "fetch domain suffixes", "error", err)
		return defaultSuffixes()
	}

	seen := make(map[string]struct{}, len(list.Domains))
	var suffixes []string
	for _, d := range list.Domains {
		_, rest, ok := strings.Cut(d.Name, ".")
		if !ok || rest == "" {
			continue
		}
		suffix := "." + rest
		if _, dup := seen[suffix]; dup {
			continue
		}
		seen[suffix] = struct{}{}
		suffixes = append(suffixes, suffix)
	}

	if len(suffixes) == 0 {
		return defaultSuffixes()
	}
	return suffixes
}

func defaultSuffixes() []string {
	return append([]string(nil), DefaultSuffixes...)
}
