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

package transport

import "github.com/myhdl/cosim-bridge/bridge/errs"

// Fake is an in-memory Transport used by tests: Write appends to Sent,
// Read pops the next queued reply (or returns ErrTransportClosed once
// Replies is exhausted, standing in for peer EOF).
type Fake struct {
	Sent    []string
	Replies []string
}

// Write records the frame.
func (f *Fake) Write(frame string) error {
	f.Sent = append(f.Sent, frame)
	return nil
}

// Read pops the next queued reply.
func (f *Fake) Read() (string, error) {
	if len(f.Replies) == 0 {
		return "", errs.ErrTransportClosed
	}
	r := f.Replies[0]
	f.Replies = f.Replies[1:]
	return r, nil
}

// Exchange writes then reads, matching Pipe's behavior.
func (f *Fake) Exchange(frame string) (string, error) {
	if err := f.Write(frame); err != nil {
		return "", err
	}
	return f.Read()
}
