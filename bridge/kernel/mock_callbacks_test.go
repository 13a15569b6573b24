/*
Copyright (c) the cosim-bridge authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package kernel

import (
	"errors"
	"math/big"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestMockCallbacksRecordsAbort(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockCallbacks(ctrl)

	wantErr := errors.New("boom")
	m.EXPECT().Abort(wantErr)
	m.Abort(wantErr)
}

func TestMockCallbacksReadOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockCallbacks(ctrl)

	m.EXPECT().ReadOutput(3).Return(big.NewInt(42), nil)
	v, err := m.ReadOutput(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("got %v, want 42", v)
	}
}
