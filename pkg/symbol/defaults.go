package symbol

// 📚 Category is a titled group of default mappings
type Category struct {
	Title    string
	Mappings []Mapping
}

// Categories returns the built-in mappings grouped for documentation, in display order.
func Categories() []Category {
	return []Category{
		{Title: "Arrows", Mappings: []Mapping{
			{"->", "\u2192"},
			{"=>", "\u21D2"},
			{"<-", "\u2190"},
			{"<=", "\u21D0"},
			{":N:", "\u2191"},
			{":N2:", "\u21D1"},
			{":S:", "\u2193"},
			{":S2:", "\u21D3"},
			{":E:", "\u2192"},
			{":E2:", "\u21D2"},
			{":W:", "\u2190"},
			{":W2:", "\u21D0"},
		}},
		{Title: "Typography", Mappings: []Mapping{
			{"--", "\u2012"},
			{"---", "\u2014"},
			{":dagger:", "\u2020"},
			{":ddagger:", "\u2021"},
			{":section:", "\u00A7"},
			{":paragraph:", "\u00B6"},
		}},
		{Title: "Math (General)", Mappings: []Mapping{
			{":infty:", "\u221E"},
			{":deg:", "\u00B0"},
			{":permil:", "\u2030"},
			{":sqrt:", "\u221A"},
			{":cubert:", "\u221B"},
			{":4thrt:", "\u221C"},
			{":angle:", "\u2220"},
			{":hbar:", "\u210F"},
		}},
		{Title: "Math (Binary Operators)", Mappings: []Mapping{
			{":pm:", "\u00B1"},
			{":mp:", "\u2213"},
			{":dot:", "\u00B7"},
			{":times:", "\u00D7"},
			{":div:", "\u00F7"},
		}},
		{Title: "Math (Relational)", Mappings: []Mapping{
			{":approx:", "\u2248"},
			{":equiv:", "\u2261"},
			{":propto:", "\u221D"},
			{":neq:", "\u2260"},
			{":geq:", "\u2265"},
			{":leq:", "\u2264"},
			{":>>:", "\u226B"},
			{":<<:", "\u226A"},
		}},
		{Title: "Math (Sets)", Mappings: []Mapping{
			{":subset:", "\u2282"},
			{":subseteq:", "\u2286"},
			{":supset:", "\u2283"},
			{":supseteq:", "\u2287"},
			{":in:", "\u2208"},
			{":ni:", "\u220B"},
			{":cap:", "\u2229"},
			{":cup:", "\u222A"},
			{":emptyset:", "\u2205"},
		}},
		{Title: "Math (Logical)", Mappings: []Mapping{
			{":neg:", "\u00AC"},
			{":vee:", "\u2228"},
			{":wedge:", "\u2227"},
			{":forall:", "\u2200"},
			{":exists:", "\u2203"},
			{":therefore:", "\u2234"},
		}},
		{Title: "Math (Calculus)", Mappings: []Mapping{
			{":nabla:", "\u2207"},
			{":partial:", "\u2202"},
			{":integral:", "\u222B"},
		}},
		{Title: "Fractions", Mappings: []Mapping{
			{":1/2:", "\u00BD"},
			{":1/3:", "\u2153"},
			{":2/3:", "\u2154"},
			{":1/4:", "\u00BC"},
			{":3/4:", "\u00BE"},
			{":1/5:", "\u2155"},
			{":2/5:", "\u2156"},
			{":3/5:", "\u2157"},
			{":4/5:", "\u2158"},
			{":1/6:", "\u2159"},
			{":5/6:", "\u215A"},
			{":1/7:", "\u2150"},
			{":1/8:", "\u215B"},
			{":3/8:", "\u215C"},
			{":5/8:", "\u215D"},
			{":7/8:", "\u215E"},
			{":1/9:", "\u2151"},
			{":1/10:", "\u2152"},
		}},
		{Title: "Greek Symbols (Lowercase)", Mappings: []Mapping{
			{":alpha:", "\u03B1"},
			{":beta:", "\u03B2"},
			{":gamma:", "\u03B3"},
			{":delta:", "\u03B4"},
			{":epsilon:", "\u03B5"},
			{":zeta:", "\u03B6"},
			{":eta:", "\u03B7"},
			{":theta:", "\u03B8"},
			{":iota:", "\u03B9"},
			{":kappa:", "\u03BA"},
			{":lambda:", "\u03BB"},
			{":mu:", "\u03BC"},
			{":nu:", "\u03BD"},
			{":xi:", "\u03BE"},
			{":omicron:", "\u03BF"},
			{":pi:", "\u03C0"},
			{":rho:", "\u03C1"},
			{":sigma:", "\u03C3"},
			{":tau:", "\u03C4"},
			{":upsilon:", "\u03C5"},
			{":phi:", "\u03C6"},
			{":chi:", "\u03C7"},
			{":psi:", "\u03C8"},
			{":omega:", "\u03C9"},
		}},
		{Title: "Greek Symbols (Uppercase)", Mappings: []Mapping{
			{":Alpha:", "\u0391"},
			{":Beta:", "\u0392"},
			{":Gamma:", "\u0393"},
			{":Delta:", "\u0394"},
			{":Epsilon:", "\u0395"},
			{":Zeta:", "\u0396"},
			{":Eta:", "\u0397"},
			{":Theta:", "\u0398"},
			{":Iota:", "\u0399"},
			{":Kappa:", "\u039A"},
			{":Lambda:", "\u039B"},
			{":Mu:", "\u039C"},
			{":Nu:", "\u039D"},
			{":Xi:", "\u039E"},
			{":Omicron:", "\u039F"},
			{":Pi:", "\u03A0"},
			{":Rho:", "\u03A1"},
			{":Sigma:", "\u03A3"},
			{":Tau:", "\u03A4"},
			{":Upsilon:", "\u03A5"},
			{":Phi:", "\u03A6"},
			{":Chi:", "\u03A7"},
			{":Psi:", "\u03A8"},
			{":Omega:", "\u03A9"},
		}},
		{Title: "Currency", Mappings: []Mapping{
			{":cent:", "\u00A2"},
			{":pound:", "\u00A3"},
			{":euro:", "\u20AC"},
			{":lira:", "\u20A4"},
			{":peso:", "\u20B1"},
			{":ruble:", "\u20BD"},
			{":rupee:", "\u20B9"},
			{":won:", "\u20A9"},
			{":yen:", "\u00A5"},
			{":yuan:", "\u00A5"},
		}},
	}
}

// Defaults returns the built-in mapping set sorted alphabetically by trigger.
func Defaults() []Mapping {
	var out []Mapping
	for _, c := range Categories() {
		out = append(out, c.Mappings...)
	}
	sortMappings(out)
	return out
}
