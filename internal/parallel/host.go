package parallel

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// Host describes the processor the units will run on.
type Host struct {
	Brand          string
	Vendor         string
	PhysicalCores  int
	LogicalCores   int
	ThreadsPerCore int
	AVX2           bool
	FMA3           bool
}

// DescribeHost reads the CPU description detected by cpuid.
func DescribeHost() Host {
	return Host{
		Brand:          cpuid.CPU.BrandName,
		Vendor:         cpuid.CPU.VendorString,
		PhysicalCores:  cpuid.CPU.PhysicalCores,
		LogicalCores:   cpuid.CPU.LogicalCores,
		ThreadsPerCore: cpuid.CPU.ThreadsPerCore,
		AVX2:           cpuid.CPU.Supports(cpuid.AVX2),
		FMA3:           cpuid.CPU.Supports(cpuid.FMA3),
	}
}

// Cores returns the number of hardware threads available to the process.
// cpuid reports 0 on platforms it cannot probe; runtime.NumCPU is the fallback.
func (h Host) Cores() int {
	if h.LogicalCores > 0 {
		return min(h.LogicalCores, runtime.NumCPU())
	}
	return runtime.NumCPU()
}

// Oversubscribed reports whether workers exceed the hardware threads.
func (h Host) Oversubscribed(workers int) bool {
	return workers > h.Cores()
}

// String returns a one-line description for logs.
func (h Host) String() string {
	brand := h.Brand
	if brand == "" {
		brand = "unknown"
	}
	return fmt.Sprintf("cpu=%q vendor=%s physical=%d logical=%d threads_per_core=%d avx2=%t fma3=%t",
		brand, h.Vendor, h.PhysicalCores, h.LogicalCores, h.ThreadsPerCore, h.AVX2, h.FMA3)
}
