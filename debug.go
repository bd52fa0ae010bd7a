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

package xdd

import (
	"log"
	"os"
)

func init() {
	log.SetOutput(os.Stdout)
}

// logTable dumps every live node in f's table, for interactive use
// while debugging a factory.
func (f *Factory[W]) logTable() {
	if f.Errored() {
		log.Printf("ERROR: %s\n", f.Error())
	}
	for idx, n := range f.nodes {
		if idx < 2 {
			continue
		}
		log.Printf("%-5d (variable=%-3d lo=%v hi=%v)\n", idx, n.variable, n.lo, n.hi)
	}
}
