// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package metrics

import (
	"fmt"
	"reflect"
	"sync"
)

// DuplicateMetric is the error returned by Register when name is already
// taken.
type DuplicateMetric string

func (err DuplicateMetric) Error() string {
	return fmt.Sprintf("duplicate metric: %s", string(err))
}

// Registry holds a named collection of metrics.
type Registry interface {
	Each(func(string, interface{}))
	Get(string) interface{}
	GetOrRegister(string, interface{}) interface{}
	Register(string, interface{}) error
	Unregister(string)
	UnregisterAll()
}

// StandardRegistry is the standard Registry implementation, backed by a
// concurrent map.
type StandardRegistry struct {
	metrics sync.Map
}

// NewRegistry constructs a new StandardRegistry.
func NewRegistry() Registry {
	return &StandardRegistry{}
}

// DefaultRegistry is used by the NewRegistered* constructors when called
// with a nil Registry.
var DefaultRegistry = NewRegistry()

func (r *StandardRegistry) Each(f func(string, interface{})) {
	r.metrics.Range(func(k, v interface{}) bool {
		f(k.(string), v)
		return true
	})
}

func (r *StandardRegistry) Get(name string) interface{} {
	v, _ := r.metrics.Load(name)
	return v
}

// GetOrRegister returns the metric registered under name, or constructs
// one from i (a value, or a niladic constructor function) and registers
// it.
func (r *StandardRegistry) GetOrRegister(name string, i interface{}) interface{} {
	if v, ok := r.metrics.Load(name); ok {
		return v
	}
	v := i
	if rv := reflect.ValueOf(i); rv.Kind() == reflect.Func && rv.Type().NumIn() == 0 && rv.Type().NumOut() == 1 {
		v = rv.Call(nil)[0].Interface()
	}
	actual, _ := r.metrics.LoadOrStore(name, v)
	return actual
}

func (r *StandardRegistry) Register(name string, i interface{}) error {
	if _, loaded := r.metrics.LoadOrStore(name, i); loaded {
		return DuplicateMetric(name)
	}
	return nil
}

func (r *StandardRegistry) Unregister(name string) {
	r.metrics.Delete(name)
}

func (r *StandardRegistry) UnregisterAll() {
	r.metrics.Range(func(k, _ interface{}) bool {
		r.metrics.Delete(k)
		return true
	})
}
