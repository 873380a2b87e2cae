// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build windows

package d3d12

import (
	"log"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	d3d12DLL       = windows.NewLazySystemDLL("d3d12.dll")
	dxgiDLL        = windows.NewLazySystemDLL("dxgi.dll")
	d3dcompilerDLL = windows.NewLazySystemDLL("d3dcompiler_47.dll")

	procD3D12CreateDevice            = d3d12DLL.NewProc("D3D12CreateDevice")
	procD3D12SerializeRootSignature  = d3d12DLL.NewProc("D3D12SerializeRootSignature")
	procD3D12GetDebugInterface       = d3d12DLL.NewProc("D3D12GetDebugInterface")
	procCreateDXGIFactory1           = dxgiDLL.NewProc("CreateDXGIFactory1")
	procD3DCompile                   = d3dcompilerDLL.NewProc("D3DCompile")
)

func createDXGIFactory1() (*iDXGIFactory1, error) {
	var f *iDXGIFactory1
	res, _, _ := procCreateDXGIFactory1.Call(
		uintptr(unsafe.Pointer(&iidIDXGIFactory1)), uintptr(unsafe.Pointer(&f)))
	if failed(res) {
		return nil, hresultErr("CreateDXGIFactory1", res)
	}
	return f, nil
}

func d3d12CreateDevice(adapter *iDXGIAdapter1, featureLevel uint32, out **iD3D12Device) error {
	var outIID *windows.GUID
	var outPtr uintptr
	if out != nil {
		outIID = &iidID3D12Device
		outPtr = uintptr(unsafe.Pointer(out))
	}
	res, _, _ := procD3D12CreateDevice.Call(
		uintptr(unsafe.Pointer(adapter)), uintptr(featureLevel),
		uintptr(unsafe.Pointer(outIID)), outPtr)
	if failed(res) {
		return hresultErr("D3D12CreateDevice", res)
	}
	return nil
}

func d3d12GetDebugInterface() (*iD3D12Debug, error) {
	var d *iD3D12Debug
	res, _, _ := procD3D12GetDebugInterface.Call(
		uintptr(unsafe.Pointer(&iidID3D12Debug)), uintptr(unsafe.Pointer(&d)))
	if failed(res) {
		return nil, hresultErr("D3D12GetDebugInterface", res)
	}
	return d, nil
}

func d3d12SerializeRootSignature(desc *_D3D12_ROOT_SIGNATURE_DESC) (blob, errorBlob *iD3DBlob, err error) {
	res, _, _ := procD3D12SerializeRootSignature.Call(
		uintptr(unsafe.Pointer(desc)), _D3D_ROOT_SIGNATURE_VERSION_1,
		uintptr(unsafe.Pointer(&blob)), uintptr(unsafe.Pointer(&errorBlob)))
	if failed(res) {
		return nil, errorBlob, hresultErr("D3D12SerializeRootSignature", res)
	}
	return blob, errorBlob, nil
}

func d3dCompile(src []byte, entryPoint, profile string) (code, errorBlob *iD3DBlob, err error) {
	entry := append([]byte(entryPoint), 0)
	target := append([]byte(profile), 0)
	res, _, _ := procD3DCompile.Call(
		uintptr(unsafe.Pointer(&src[0])), uintptr(len(src)),
		0, 0, 0,
		uintptr(unsafe.Pointer(&entry[0])), uintptr(unsafe.Pointer(&target[0])),
		0, 0,
		uintptr(unsafe.Pointer(&code)), uintptr(unsafe.Pointer(&errorBlob)))
	if failed(res) {
		return nil, errorBlob, hresultErr("D3DCompile", res)
	}
	return code, errorBlob, nil
}

// prepareDriver probes the runtime environment: the D3D12,
// DXGI and shader-compiler libraries must load, DXGI 1.4
// must be available and a minimal device must be creatable
// at feature level 11_1.
func prepareDriver() bool {
	for _, p := range [...]*windows.LazyProc{
		procD3D12CreateDevice, procD3D12SerializeRootSignature,
		procCreateDXGIFactory1, procD3DCompile,
	} {
		if p.Find() != nil {
			log.Printf("[!] d3d12: could not find %s", p.Name)
			return false
		}
	}
	factory, err := createDXGIFactory1()
	if err != nil {
		log.Printf("[!] d3d12: could not create DXGIFactory")
		return false
	}
	defer factory.Release()
	var factory4 *iDXGIFactory4
	if err := factory.QueryInterface(&iidIDXGIFactory4, unsafe.Pointer(&factory4)); err != nil {
		log.Printf("[!] d3d12: DXGI 1.4 support not found, required for D3D12")
		return false
	}
	adapter, err := factory4.EnumAdapters1(0)
	factory4.Release()
	if err != nil {
		log.Printf("[!] d3d12: no adapter found")
		return false
	}
	defer adapter.Release()
	// A nil out parameter checks device support without
	// creating one.
	if err := d3d12CreateDevice(adapter, _D3D_FEATURE_LEVEL_11_1, nil); err != nil {
		log.Printf("[!] d3d12: could not create device at feature level 11_1")
		return false
	}
	return true
}
