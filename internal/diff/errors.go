/*
 * Copyright 2025 The csvdiff Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package diff

import "fmt"

// ErrSchema reports that the two tables share no usable column schema.
// It aborts the comparison before any report is assembled.
type ErrSchema struct {
	Msg string
	Err error
}

// ErrKey reports an invalid key selection: a requested key column is not part
// of the common schema (or the key list itself is malformed).
type ErrKey struct {
	Msg string
	Err error
}

func (e *ErrSchema) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("schema error: %s", e.Msg)
}

func (e *ErrSchema) Unwrap() error {
	return e.Err
}

func (e *ErrKey) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid key selection: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("invalid key selection: %s", e.Msg)
}

func (e *ErrKey) Unwrap() error {
	return e.Err
}
