// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package jwtassertion

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/otaforge/ota-update-service/config"
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/utils"
)

const (
	jwksCacheTTL      = 1 * time.Hour
	jwksFetchTimeout  = 10 * time.Second
	jwksRetryMax      = 3
	bearerTokenPrefix = "Bearer "
)

type TokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Scopes splits the space separated scope claim
func (c *TokenClaims) Scopes() []string {
	return strings.Fields(c.Scope)
}

type tokenClaimsCtxKey struct{}

type callerCtxKey struct{}

type Middleware func(http.Handler) http.Handler

// JWKS represents a JSON Web Key Set
type JWKS struct {
	Keys []JSONWebKey `json:"keys"`
}

// JSONWebKey represents a single key in a JWKS
type JSONWebKey struct {
	Kty string   `json:"kty"`
	Kid string   `json:"kid"`
	Use string   `json:"use"`
	N   string   `json:"n"`
	E   string   `json:"e"`
	Alg string   `json:"alg"`
	X5c []string `json:"x5c,omitempty"`
}

// Validator checks bearer tokens against the configured issuer, audience and key set
type Validator struct {
	cfg    config.KeyManagerConfigurations
	client *retryablehttp.Client

	mu       sync.RWMutex
	jwks     *JWKS
	cachedAt time.Time
}

func NewValidator(cfg config.KeyManagerConfigurations) *Validator {
	client := retryablehttp.NewClient()
	client.RetryMax = jwksRetryMax
	client.HTTPClient.Timeout = jwksFetchTimeout
	client.Logger = slog.Default()
	if cfg.JWKSUrl == "" {
		slog.Warn("No JWKS URL configured, token signatures will not be verified")
	}
	return &Validator{cfg: cfg, client: client}
}

func JWTAuthMiddleware(header string, validator *Validator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(header)
			if tokenString == "" {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, fmt.Sprintf("missing header: %s", header))
				return
			}
			tokenString = strings.TrimPrefix(tokenString, bearerTokenPrefix)

			claims, err := validator.Validate(r.Context(), tokenString)
			if err != nil {
				slog.Error("JWT validation failed", "error", err)
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "invalid jwt")
				return
			}
			ctx := context.WithValue(r.Context(), tokenClaimsCtxKey{}, claims)
			ctx = WithCaller(ctx, models.Caller{Subject: claims.Subject, Scopes: claims.Scopes()})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewMockMiddleware authenticates every request as caller
func NewMockMiddleware(caller models.Caller) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

func WithCaller(ctx context.Context, caller models.Caller) context.Context {
	return context.WithValue(ctx, callerCtxKey{}, caller)
}

// GetCaller returns the authenticated caller, or the zero Caller on unauthenticated routes
func GetCaller(ctx context.Context) models.Caller {
	caller, _ := ctx.Value(callerCtxKey{}).(models.Caller)
	return caller
}

func GetTokenClaims(ctx context.Context) *TokenClaims {
	claims, ok := ctx.Value(tokenClaimsCtxKey{}).(*TokenClaims)
	if !ok {
		return nil
	}
	return claims
}

// Validate parses tokenString and checks its signature, expiry, issuer and audience.
// Without a JWKS URL the signature is not verified.
func (v *Validator) Validate(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if v.cfg.JWKSUrl != "" {
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			kid, ok := token.Header["kid"].(string)
			if !ok {
				return nil, fmt.Errorf("kid not found in token header")
			}
			return v.publicKey(ctx, kid)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
		if !token.Valid {
			return nil, fmt.Errorf("token is not valid")
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, fmt.Errorf("failed to extract claims: %w", err)
		}
		if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
			return nil, fmt.Errorf("token is expired")
		}
	}

	if err := validateIssuer(claims.Issuer, v.cfg.Issuer); err != nil {
		return nil, err
	}
	if err := validateAudience(claims.Audience, v.cfg.Audience); err != nil {
		return nil, err
	}
	return claims, nil
}

// publicKey looks kid up in the cached key set, refetching once on a miss
func (v *Validator) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	jwks, err := v.keySet(ctx, false)
	if err != nil {
		return nil, err
	}
	if key := findKey(jwks, kid); key != nil {
		return convertJWKToPublicKey(key)
	}
	jwks, err = v.keySet(ctx, true)
	if err != nil {
		return nil, err
	}
	if key := findKey(jwks, kid); key != nil {
		return convertJWKToPublicKey(key)
	}
	return nil, fmt.Errorf("unable to find key with kid: %s", kid)
}

func findKey(jwks *JWKS, kid string) *JSONWebKey {
	for i := range jwks.Keys {
		if jwks.Keys[i].Kid == kid {
			return &jwks.Keys[i]
		}
	}
	return nil
}

func (v *Validator) keySet(ctx context.Context, refresh bool) (*JWKS, error) {
	v.mu.RLock()
	if !refresh && v.jwks != nil && time.Since(v.cachedAt) < jwksCacheTTL {
		defer v.mu.RUnlock()
		return v.jwks, nil
	}
	v.mu.RUnlock()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, v.cfg.JWKSUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build JWKS request: %w", err)
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JWKS endpoint returned status: %d", resp.StatusCode)
	}
	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS: %w", err)
	}

	v.mu.Lock()
	v.jwks = &jwks
	v.cachedAt = time.Now()
	v.mu.Unlock()
	return &jwks, nil
}

// validateIssuer validates the issuer claim against allowed issuers
func validateIssuer(issuer string, allowedIssuers []string) error {
	if len(allowedIssuers) == 0 {
		return fmt.Errorf("no allowed issuers configured")
	}
	trimmedIssuer := strings.TrimSpace(issuer)
	for _, allowed := range allowedIssuers {
		if strings.TrimSpace(allowed) == trimmedIssuer {
			return nil
		}
	}
	return fmt.Errorf("invalid issuer: expected one of %v, got %s", allowedIssuers, issuer)
}

// validateAudience validates the audience claim against allowed audiences
func validateAudience(audiences jwt.ClaimStrings, allowedAudiences []string) error {
	if len(allowedAudiences) == 0 {
		return fmt.Errorf("no allowed audiences configured")
	}
	allowed := make(map[string]struct{}, len(allowedAudiences))
	for _, a := range allowedAudiences {
		allowed[strings.TrimSpace(a)] = struct{}{}
	}
	for _, aud := range audiences {
		if _, ok := allowed[strings.TrimSpace(aud)]; ok {
			return nil
		}
	}
	return fmt.Errorf("invalid audience: expected one of %v, got %v", allowedAudiences, audiences)
}

// convertJWKToPublicKey converts a JWK to an RSA public key
func convertJWKToPublicKey(jwk *JSONWebKey) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}
	var e int
	for _, b := range eBytes {
		e = e<<8 + int(b)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
