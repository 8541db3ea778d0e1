package types

import "testing"

func TestEqualsStructural(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"identical int widths", Int{Width: 32, Signed: true}, Int{Width: 32, Signed: true}, true},
		{"different signedness", Int{Width: 32, Signed: true}, Int{Width: 32, Signed: false}, false},
		{"different widths", Int{Width: 32, Signed: true}, Int{Width: 64, Signed: true}, false},
		{"custom by name", Custom{Name: "Point"}, Custom{Name: "Point"}, true},
		{"custom different name", Custom{Name: "Point"}, Custom{Name: "Vector"}, false},
		{"pointer pointee must match", Pointer{Pointee: Int{Width: 8, Signed: true}}, Pointer{Pointee: Int{Width: 8, Signed: true}}, true},
		{"pointer pointee mismatch", Pointer{Pointee: Int{Width: 8, Signed: true}}, Pointer{Pointee: Int{Width: 16, Signed: true}}, false},
		{"tuple arity mismatch", Tuple{Elements: []Type{Bool{}}}, Tuple{Elements: []Type{Bool{}, Bool{}}}, false},
		{"tuple elementwise", Tuple{Elements: []Type{Bool{}, String{}}}, Tuple{Elements: []Type{Bool{}, String{}}}, true},
		{"function signature match", Function{Args: []Type{Bool{}}, Return: Int{Width: 64, Signed: true}},
			Function{Args: []Type{Bool{}}, Return: Int{Width: 64, Signed: true}}, true},
		{"function varargs mismatch", Function{Args: nil, HasVarArgs: true}, Function{Args: nil, HasVarArgs: false}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.want {
				t.Errorf("Equals() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric(Int{Width: 64, Signed: true}) {
		t.Error("Int should be numeric")
	}
	if !IsNumeric(Float{Width: 64}) {
		t.Error("Float should be numeric")
	}
	if IsNumeric(Bool{}) {
		t.Error("Bool should not be numeric")
	}
}

func TestIsErrorTreatsNilAsError(t *testing.T) {
	if !IsError(nil) {
		t.Error("nil should be treated as Error")
	}
	if !IsError(Error{}) {
		t.Error("Error{} should be Error")
	}
	if IsError(Void{}) {
		t.Error("Void should not be Error")
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(Int{Width: 32, Signed: false}); got != "Int(UInt32)" {
		t.Errorf("Describe() = %q", got)
	}
	if got := Describe(nil); got != "<nil>" {
		t.Errorf("Describe(nil) = %q", got)
	}
}
