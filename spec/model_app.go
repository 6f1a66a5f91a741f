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

type CreateAppRequest struct {
	AppKey string `json:"appKey"`
	Name   string `json:"name"`
}

type AppResponse struct {
	Id        string    `json:"id"`
	AppKey    string    `json:"appKey"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type AppListResponse struct {
	Apps   []AppResponse `json:"apps"`
	Limit  int32         `json:"limit"`
	Offset int32         `json:"offset"`
}

type DeleteAppResponse struct {
	Deleted       bool `json:"deleted"`
	PurgedObjects int  `json:"purgedObjects"`
}
