// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

//go:build debug

package xdd

// _DEBUG gates the verbose trace statements threaded through
// table.go/errors.go. It is independent of a factory's own Debug
// option (config.go), which a caller sets at construction time; _DEBUG
// is the package-wide switch an engineer flips by passing -tags debug
// while working on xdd itself.
const _DEBUG bool = true
