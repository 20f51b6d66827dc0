package units

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=resolver_mocks_test.go -package=units_test

type ipLookup interface {
	GetIPInfo(ip net.IP) (*ipinfo.Core, error)
}

type Default struct {
	System  System `json:"system"`
	Country string `json:"country,omitempty"`
}

// Resolver guesses a visitor's unit system from the country of their IP address.
type Resolver struct {
	lookup      ipLookup
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewResolver(lookup ipLookup, redisClient *redis.Client, cacheTTL time.Duration) *Resolver {
	return &Resolver{
		lookup:      lookup,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

func NewIpInfoClient(token string, httpClient *http.Client) *ipinfo.Client {
	return ipinfo.NewClient(httpClient, nil, token)
}

func cacheKey(ip string) string {
	return fmt.Sprintf("units::%s", ip)
}

// DefaultSystem never fails: unknown, local or unresolvable addresses get the metric system.
func (r *Resolver) DefaultSystem(ctx context.Context, userIP string) Default {
	ctx, span := tracing.GlobalTracer.Start(ctx, "units.defaultSystem")
	defer span.End()
	span.SetAttributes(attribute.String("user.ip", userIP))

	fallback := Default{System: Metric}
	if userIP == "" || userIP == "localhost" || pkg.IPIsLocal(userIP) {
		return fallback
	}

	ip := net.ParseIP(userIP)
	if ip == nil {
		log.Warnf("units: cannot parse user ip [%s]", userIP)
		return fallback
	}
	if ip.IsPrivate() || ip.IsLoopback() {
		return fallback
	}

	country, err := r.redisClient.Get(ctx, cacheKey(userIP)).Result()
	switch {
	case err == nil:
		span.SetAttributes(attribute.Bool("from-cache", true))
		return Default{System: DefaultSystemForCountry(country), Country: country}
	case errors.Is(err, redis.Nil):
		// not cached yet
	default:
		log.Errorf("units: get cached country for [%s]: %s", userIP, err)
	}

	info, err := r.lookup.GetIPInfo(ip)
	if err != nil {
		log.Errorf("units: ip info lookup for [%s]: %s", userIP, err)
		span.RecordError(err)
		return fallback
	}
	if info == nil || info.Country == "" {
		return fallback
	}

	if err := r.redisClient.Set(ctx, cacheKey(userIP), info.Country, r.cacheTTL).Err(); err != nil {
		log.Errorf("units: cache country for [%s]: %s", userIP, err)
	}

	return Default{System: DefaultSystemForCountry(info.Country), Country: info.Country}
}
