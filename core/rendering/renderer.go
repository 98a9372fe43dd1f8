/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package rendering

import (
	"embed"
	"io"

	"github.com/google/safehtml/template"
	"github.com/rpncalc/rpncalc/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// CalcRenderer handles rendering of calculator view models to HTML
type CalcRenderer struct {
	calcTemplate *template.Template
}

// NewCalcRenderer creates a new calculator renderer
func NewCalcRenderer() (*CalcRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	calcTemplate, err := template.New("calc.html").ParseFS(trustedFS, "templates/calc.html")
	if err != nil {
		return nil, err
	}

	return &CalcRenderer{calcTemplate: calcTemplate}, nil
}

// Render renders a CalcViewModel to the provided writer
func (r *CalcRenderer) Render(w io.Writer, vm views.CalcViewModel) error {
	return r.calcTemplate.Execute(w, vm)
}
