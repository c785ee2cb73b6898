package shim

import (
	"bytes"
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

func TestNewBuilder(t *testing.T) {
	b := NewBuilder("host")
	if b.hostModuleName != "host" {
		t.Errorf("expected host module name 'host', got '%s'", b.hostModuleName)
	}
	if b.memoryPages != DefaultMemoryPages {
		t.Errorf("expected %d memory pages, got %d", DefaultMemoryPages, b.memoryPages)
	}
	if b.memoryExportName != "memory" {
		t.Errorf("expected memory export 'memory', got '%s'", b.memoryExportName)
	}
}

func TestBuilder_MemoryOnly(t *testing.T) {
	got := NewBuilder("host").Build()
	want := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x05, 0x03, 0x01, 0x00, 0x01,
		0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Build() = % x\nwant      % x", got, want)
	}
}

func TestBuilder_Forwards(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	_, err := rt.NewHostModuleBuilder("host").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			// Report the caller's memory size so the test sees which module called.
			a, b := api.DecodeI32(stack[0]), api.DecodeI32(stack[1])
			stack[0] = api.EncodeI32(a - b)
			stack[1] = uint64(mod.Memory().Size())
		}), []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32, api.ValueTypeI64}).
		Export("sub").
		Instantiate(ctx)
	if err != nil {
		t.Fatalf("instantiate host: %v", err)
	}

	b := NewBuilder("host")
	b.SetMemoryPages(2)
	b.AddFunc("sub", []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32, api.ValueTypeI64})

	mod, err := rt.InstantiateWithConfig(ctx, b.Build(), wazero.NewModuleConfig().WithName("shim"))
	if err != nil {
		t.Fatalf("instantiate shim: %v", err)
	}

	if mod.ExportedMemory("memory") == nil {
		t.Fatal("shim does not export memory")
	}

	res, err := mod.ExportedFunction("sub").Call(ctx, api.EncodeI32(10), api.EncodeI32(3))
	if err != nil {
		t.Fatalf("call sub: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res))
	}
	if got := api.DecodeI32(res[0]); got != 7 {
		t.Errorf("sub(10, 3) = %d, want 7", got)
	}
	if res[1] != 2*65536 {
		t.Errorf("caller memory size = %d, want %d", res[1], 2*65536)
	}
}

func TestBuilder_OmitMemory(t *testing.T) {
	b := NewBuilder("host")
	b.OmitMemory()
	want := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	if got := b.Build(); !bytes.Equal(got, want) {
		t.Errorf("Build() = % x\nwant      % x", got, want)
	}

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	_, err := rt.NewHostModuleBuilder("host").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = api.EncodeI32(api.DecodeI32(stack[0]) * 2)
		}), []api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32}).
		Export("double").
		Instantiate(ctx)
	if err != nil {
		t.Fatalf("instantiate host: %v", err)
	}

	b.AddFunc("double", []api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32})
	mod, err := rt.InstantiateWithConfig(ctx, b.Build(), wazero.NewModuleConfig().WithName("shim"))
	if err != nil {
		t.Fatalf("instantiate shim: %v", err)
	}
	if mod.ExportedMemory("memory") != nil {
		t.Error("shim exports a memory")
	}
	res, err := mod.ExportedFunction("double").Call(ctx, api.EncodeI32(21))
	if err != nil {
		t.Fatalf("call double: %v", err)
	}
	if got := api.DecodeI32(res[0]); got != 42 {
		t.Errorf("double(21) = %d, want 42", got)
	}
}

func TestBuilder_MemoryExportName(t *testing.T) {
	b := NewBuilder("host")
	b.SetMemoryExport("mem")

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := rt.Instantiate(ctx, b.Build())
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	if mod.ExportedMemory("mem") == nil {
		t.Error("expected memory exported as 'mem'")
	}
}

func TestEncodeULEB128(t *testing.T) {
	tests := []struct {
		in   uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{624485, []byte{0xe5, 0x8e, 0x26}},
	}
	for _, tt := range tests {
		if got := EncodeULEB128(tt.in); !bytes.Equal(got, tt.want) {
			t.Errorf("EncodeULEB128(%d) = % x, want % x", tt.in, got, tt.want)
		}
	}
}
