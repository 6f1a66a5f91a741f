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

package utils

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// HexToBase64URL re-encodes a hex digest as unpadded base64url, the form clients
// compare downloaded bytes against
func HexToBase64URL(hexDigest string) (string, error) {
	trimmed := strings.TrimSpace(hexDigest)
	if trimmed == "" {
		return "", fmt.Errorf("empty digest: %w", ErrInvalidHash)
	}
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, ErrInvalidHash)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// IsHexDigest reports whether s decodes as non-empty hex
func IsHexDigest(s string) bool {
	_, err := HexToBase64URL(s)
	return err == nil
}
