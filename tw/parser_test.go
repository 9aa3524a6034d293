package tw

import (
	"reflect"
	"testing"

	"github.com/agiangrant/arbor/properties"
	"github.com/gogpu/gg"
)

func TestProperties(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width float64
		want  []properties.Property
	}{
		{
			name:  "palette background and padding scale",
			input: "bg-blue-500 p-4",
			want: []properties.Property{
				properties.Background{Color: gg.Hex("#3b82f6")},
				properties.PaddingAll(16),
			},
		},
		{
			name:  "padding axes combine",
			input: "px-2 py-1 pl-[10px]",
			want:  []properties.Property{properties.Padding{Top: 4, Right: 8, Bottom: 4, Left: 10}},
		},
		{
			name:  "border width, color and radius",
			input: "border-2 border-red-600 rounded-lg",
			want: []properties.Property{
				properties.BorderColor{Color: gg.Hex("#dc2626")},
				properties.BorderWidth{Width: 2},
				properties.CornerRadius{Radius: 8},
			},
		},
		{
			name:  "arbitrary values",
			input: "bg-[#1da1f2] border-[3px] border-[#000] rounded-[0.5rem] p-px",
			want: []properties.Property{
				properties.Background{Color: gg.Hex("#1da1f2")},
				properties.BorderColor{Color: gg.Hex("#000")},
				properties.BorderWidth{Width: 3},
				properties.CornerRadius{Radius: 8},
				properties.PaddingAll(1),
			},
		},
		{
			name:  "plain border and rounded",
			input: "border rounded",
			want: []properties.Property{
				properties.BorderWidth{Width: 1},
				properties.CornerRadius{Radius: 4},
			},
		},
		{
			name:  "later class wins",
			input: "bg-white bg-black",
			want:  []properties.Property{properties.Background{Color: gg.Hex("#000000")}},
		},
		{
			name:  "unknown and stateful classes are ignored",
			input: "flex text-white hover:bg-red-500 dark:p-4 bg-nope-500 p-x rounded-huge",
			want:  nil,
		},
		{
			name:  "breakpoint below threshold",
			input: "p-2 md:p-8",
			width: 700,
			want:  []properties.Property{properties.PaddingAll(8)},
		},
		{
			name:  "breakpoint cascade",
			input: "p-2 sm:p-4 md:px-8 xl:p-0",
			width: 800,
			want:  []properties.Property{properties.Padding{Top: 16, Right: 32, Bottom: 16, Left: 32}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Properties(tt.input, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Properties(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		input string
		want  ParsedClass
	}{
		{"p-4", ParsedClass{BaseClass: "p-4"}},
		{"lg:bg-white", ParsedClass{Breakpoint: BreakpointLG, BaseClass: "bg-white"}},
		{"md:hover:p-2", ParsedClass{Breakpoint: BreakpointMD, Stateful: true, BaseClass: "p-2"}},
	}
	for _, tt := range tests {
		if got := parseClass(tt.input); got != tt.want {
			t.Errorf("parseClass(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestActiveBreakpoint(t *testing.T) {
	c := DefaultBreakpoints()
	tests := []struct {
		width float64
		want  Breakpoint
	}{
		{0, BreakpointBase},
		{639, BreakpointBase},
		{640, BreakpointSM},
		{1023.5, BreakpointMD},
		{1280, BreakpointXL},
		{4000, Breakpoint2XL},
	}
	for _, tt := range tests {
		if got := c.ActiveBreakpoint(tt.width); got != tt.want {
			t.Errorf("ActiveBreakpoint(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}
