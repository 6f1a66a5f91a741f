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

package spec

import "time"

type ChannelAssignmentResponse struct {
	Id             string    `json:"id"`
	RuntimeVersion string    `json:"runtimeVersion"`
	Platform       string    `json:"platform"`
	UpdateId       string    `json:"updateId"`
	RolloutPercent float64   `json:"rolloutPercent"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type ChannelResponse struct {
	Id          string                      `json:"id"`
	Name        string                      `json:"name"`
	CreatedAt   time.Time                   `json:"createdAt"`
	Assignments []ChannelAssignmentResponse `json:"assignments"`
}

type ChannelListResponse struct {
	Channels []ChannelResponse `json:"channels"`
}

// UpdateRolloutRequest sets the rollout percentage of one assignment of a channel
type UpdateRolloutRequest struct {
	AssignmentId   string   `json:"assignmentId"`
	RolloutPercent *float64 `json:"rolloutPercent"`
}

type UpdateRolloutResponse struct {
	Id             string  `json:"id"`
	RolloutPercent float64 `json:"rolloutPercent"`
}
