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
	"crypto/sha256"
	"encoding/binary"
)

const rolloutBuckets = 100

// RolloutBucket maps a client id onto a stable bucket in [0,99]: the first two
// bytes of its SHA-256 digest read big-endian, modulo 100.
func RolloutBucket(clientID string) int {
	sum := sha256.Sum256([]byte(clientID))
	return int(binary.BigEndian.Uint16(sum[:2])) % rolloutBuckets
}

// ShouldDeliver decides whether a client falls inside a partial rollout.
// A full rollout always delivers; a partial one never delivers to an anonymous client.
func ShouldDeliver(clientID string, hasClientID bool, rolloutPercent float64) bool {
	if rolloutPercent >= rolloutBuckets {
		return true
	}
	if !hasClientID {
		return false
	}
	return float64(RolloutBucket(clientID)) < rolloutPercent
}
