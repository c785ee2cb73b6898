// Package shim builds a small guest module that imports host functions,
// re-exports them as forwarding wrappers and owns a linear memory.
//
// Calling a host function through the shim makes the shim the calling
// module, so the host can write into the shim's memory exactly as it would
// into a real guest's.
package shim

import (
	"github.com/tetratelabs/wazero/api"
)

// DefaultMemoryPages is the memory size of a shim when none is set.
const DefaultMemoryPages = 1

// Builder builds shim module bytes.
type Builder struct {
	hostModuleName   string
	memoryExportName string
	funcs            []shimFunc
	memoryPages      uint32
	noMemory         bool
}

type shimFunc struct {
	name        string
	paramTypes  []api.ValueType
	resultTypes []api.ValueType
}

// NewBuilder creates a shim builder importing from hostModuleName.
func NewBuilder(hostModuleName string) *Builder {
	return &Builder{
		hostModuleName:   hostModuleName,
		memoryExportName: "memory",
		memoryPages:      DefaultMemoryPages,
	}
}

// AddFunc adds a function to import and re-export under the same name.
func (b *Builder) AddFunc(name string, params, results []api.ValueType) {
	b.funcs = append(b.funcs, shimFunc{
		name:        name,
		paramTypes:  params,
		resultTypes: results,
	})
}

// SetMemoryPages sets the minimum size of the exported memory.
func (b *Builder) SetMemoryPages(pages uint32) {
	b.memoryPages = pages
}

// OmitMemory builds the shim without a memory, so host functions called
// through it see a caller with no memory.
func (b *Builder) OmitMemory() {
	b.noMemory = true
}

// SetMemoryExport sets the export name of the memory.
func (b *Builder) SetMemoryExport(name string) {
	b.memoryExportName = name
}

// Build generates the WASM module bytes.
func (b *Builder) Build() []byte {
	hasFuncs := len(b.funcs) > 0
	var wasm []byte

	// Magic and version
	wasm = append(wasm, 0x00, 0x61, 0x73, 0x6d)
	wasm = append(wasm, 0x01, 0x00, 0x00, 0x00)

	if hasFuncs {
		wasm = appendSection(wasm, 0x01, b.buildTypeSection())
		wasm = appendSection(wasm, 0x02, b.buildImportSection())
		wasm = appendSection(wasm, 0x03, b.buildFuncSection())
	}

	if !b.noMemory {
		wasm = appendSection(wasm, 0x05, b.buildMemorySection())
	}
	if hasFuncs || !b.noMemory {
		wasm = appendSection(wasm, 0x07, b.buildExportSection())
	}

	if hasFuncs {
		wasm = appendSection(wasm, 0x0a, b.buildCodeSection())
	}

	return wasm
}

func appendSection(wasm []byte, id byte, section []byte) []byte {
	wasm = append(wasm, id)
	wasm = append(wasm, EncodeULEB128(uint32(len(section)))...)
	return append(wasm, section...)
}

func (b *Builder) buildTypeSection() []byte {
	var section []byte
	section = append(section, EncodeULEB128(uint32(len(b.funcs)))...)

	for _, f := range b.funcs {
		section = append(section, 0x60)
		section = append(section, EncodeULEB128(uint32(len(f.paramTypes)))...)
		for _, t := range f.paramTypes {
			section = append(section, ValTypeToWasm(t))
		}
		section = append(section, EncodeULEB128(uint32(len(f.resultTypes)))...)
		for _, t := range f.resultTypes {
			section = append(section, ValTypeToWasm(t))
		}
	}

	return section
}

func (b *Builder) buildImportSection() []byte {
	var section []byte
	section = append(section, EncodeULEB128(uint32(len(b.funcs)))...)

	for i, f := range b.funcs {
		section = appendName(section, b.hostModuleName)
		section = appendName(section, f.name)
		section = append(section, 0x00)
		section = append(section, EncodeULEB128(uint32(i))...)
	}

	return section
}

func (b *Builder) buildFuncSection() []byte {
	var section []byte
	section = append(section, EncodeULEB128(uint32(len(b.funcs)))...)
	for i := range b.funcs {
		section = append(section, EncodeULEB128(uint32(i))...)
	}
	return section
}

func (b *Builder) buildMemorySection() []byte {
	var section []byte
	section = append(section, 0x01)
	section = append(section, 0x00)
	section = append(section, EncodeULEB128(b.memoryPages)...)
	return section
}

func (b *Builder) buildExportSection() []byte {
	var section []byte
	count := len(b.funcs)
	if !b.noMemory {
		count++
	}
	section = append(section, EncodeULEB128(uint32(count))...)

	if !b.noMemory {
		section = appendName(section, b.memoryExportName)
		section = append(section, 0x02)
		section = append(section, 0x00)
	}

	// Wrappers follow the imports in the function index space.
	numImports := len(b.funcs)
	for i, f := range b.funcs {
		section = appendName(section, f.name)
		section = append(section, 0x00)
		section = append(section, EncodeULEB128(uint32(numImports+i))...)
	}

	return section
}

func (b *Builder) buildCodeSection() []byte {
	var section []byte
	section = append(section, EncodeULEB128(uint32(len(b.funcs)))...)

	for i, f := range b.funcs {
		funcBody := buildFuncBody(i, f)
		section = append(section, EncodeULEB128(uint32(len(funcBody)))...)
		section = append(section, funcBody...)
	}

	return section
}

func buildFuncBody(importIdx int, f shimFunc) []byte {
	var body []byte
	body = append(body, 0x00)

	for i := range f.paramTypes {
		body = append(body, 0x20)
		body = append(body, EncodeULEB128(uint32(i))...)
	}

	body = append(body, 0x10)
	body = append(body, EncodeULEB128(uint32(importIdx))...)
	body = append(body, 0x0b)

	return body
}

func appendName(section []byte, name string) []byte {
	section = append(section, EncodeULEB128(uint32(len(name)))...)
	return append(section, name...)
}

// EncodeULEB128 encodes an unsigned value in LEB128 format.
func EncodeULEB128(v uint32) []byte {
	var result []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		result = append(result, b)
		if v == 0 {
			break
		}
	}
	return result
}

// ValTypeToWasm converts a wazero value type to WASM encoding.
func ValTypeToWasm(t api.ValueType) byte {
	switch t {
	case api.ValueTypeI32:
		return 0x7f
	case api.ValueTypeI64:
		return 0x7e
	case api.ValueTypeF32:
		return 0x7d
	case api.ValueTypeF64:
		return 0x7c
	default:
		return 0x7f
	}
}
