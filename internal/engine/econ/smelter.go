// Package econ converts concentrate production into at-mine revenue and
// computes the operating cost and cutoff statistics used to rank blocks.
package econ

// Prices are the run metal price assumptions, $/lb for the metals and
// $/troy oz for silver.
type Prices struct {
	Zn float64 `yaml:"zn"`
	Pb float64 `yaml:"pb"`
	Ag float64 `yaml:"ag"`
}

// DefaultPrices returns the long-term planning guidance prices.
func DefaultPrices() Prices {
	return Prices{Zn: 1.20, Pb: 0.90, Ag: 20.00}
}

// Smelter holds the concentrate contract terms: treatment charges,
// payable fractions and deductions, penalties, freight and levies.
type Smelter struct {
	// Treatment charge, 2-tier price participation. Above the basis
	// price the charge escalates at AboveBasis $/$, below at BelowBasis.
	ZnTcBase     float64 `yaml:"zn_tc_base"`
	ZnTcBasis    float64 `yaml:"zn_tc_basis"`
	ZnBelowBasis float64 `yaml:"zn_below_basis"`
	ZnAboveBasis float64 `yaml:"zn_above_basis"`
	PbTcBase     float64 `yaml:"pb_tc_base"`
	PbTcBasis    float64 `yaml:"pb_tc_basis"`
	PbBelowBasis float64 `yaml:"pb_below_basis"`
	PbAboveBasis float64 `yaml:"pb_above_basis"`

	// Byproduct credit and impurity penalties on zinc concentrate, $/t.
	GePayment     float64 `yaml:"ge_payment"`
	SiPenalty     float64 `yaml:"si_penalty"`
	ZnFlatPenalty float64 `yaml:"zn_flat_penalty"`
	PbFlatPenalty float64 `yaml:"pb_flat_penalty"`

	// Payable metal fractions and grade deductions.
	ZnPayZn    float64 `yaml:"zn_pay_zn"`
	ZnDeductZn float64 `yaml:"zn_deduct_zn"`
	ZnPayAg    float64 `yaml:"zn_pay_ag"`
	ZnDeductAg float64 `yaml:"zn_deduct_ag"` // g/t
	ZnRefineAg float64 `yaml:"zn_refine_ag"` // $/g
	ZnPayPb    float64 `yaml:"zn_pay_pb"`
	PbPayPb    float64 `yaml:"pb_pay_pb"`
	PbDeductPb float64 `yaml:"pb_deduct_pb"`
	PbPayAg    float64 `yaml:"pb_pay_ag"`
	PbDeductAg float64 `yaml:"pb_deduct_ag"`
	PbRefineAg float64 `yaml:"pb_refine_ag"`
	PbPayZn    float64 `yaml:"pb_pay_zn"`
	BkPayAg    float64 `yaml:"bk_pay_ag"`
	BkDeductAg float64 `yaml:"bk_deduct_ag"`

	// Concentrate grade loss to oxidation during storage and shipping.
	ZnCGReduction float64 `yaml:"zn_cg_reduction"`
	PbCGReduction float64 `yaml:"pb_cg_reduction"`

	// Shipping and site concentrate costs, $/dmt.
	ZnFreight  float64 `yaml:"zn_freight"`
	PbFreight  float64 `yaml:"pb_freight"`
	Portsite   float64 `yaml:"portsite"`
	Dewatering float64 `yaml:"dewatering"`

	// Levies against concentrate revenue.
	BII      float64 `yaml:"bii"`       // business interruption insurance, on gross less treatment
	NWABTEff float64 `yaml:"nwabt_eff"` // borough tax, on gross less treatment and freight

	// Selling expense, $/dmt.
	ZnSell float64 `yaml:"zn_sell"`
	PbSell float64 `yaml:"pb_sell"`
}

// DefaultSmelter returns the current contract terms.
func DefaultSmelter() Smelter {
	return Smelter{
		ZnTcBase:     260.0,
		ZnTcBasis:    0.0,
		ZnBelowBasis: 0.0,
		ZnAboveBasis: 0.0,
		PbTcBase:     150.0,
		PbTcBasis:    2000.0,
		PbBelowBasis: 0.0,
		PbAboveBasis: 0.0,

		// (grade - deduct) * pay * (price/conversion - refine); pay is
		// 40% but only half the tonnage ships to the paying smelter.
		GePayment:     (0.08 - 0.065) * 0.20 * ((1000.0 / 0.69405) - 120),
		SiPenalty:     (0.0400 - 0.0325) * 1.50,
		ZnFlatPenalty: 0.0,
		PbFlatPenalty: 0.0,

		ZnPayZn:    0.85,
		ZnDeductZn: 0.08,
		ZnPayAg:    0.70,
		ZnDeductAg: 3.000 * 31.10348,
		ZnRefineAg: 0.0,
		ZnPayPb:    0.0,
		PbPayPb:    0.95,
		PbDeductPb: 0.03,
		PbPayAg:    0.95,
		PbDeductAg: 42.210,
		PbRefineAg: 0.782 / 31.10348,
		PbPayZn:    0.098,
		BkPayAg:    0.70,
		BkDeductAg: 3.000 * 31.10348,

		ZnCGReduction: 0.0075,
		PbCGReduction: 0.0,

		ZnFreight:  101.47,
		PbFreight:  103.63,
		Portsite:   23.71,
		Dewatering: 10.11,

		BII:      0.0031,
		NWABTEff: 0.0271,

		ZnSell: 2.79,
		PbSell: 2.97,
	}
}

// treatmentCharge applies the 2-tier price participation form.
func treatmentCharge(base, basis, below, above, pricet float64) float64 {
	if pricet > basis {
		return base + (pricet-basis)*above
	}
	return base + (basis-pricet)*below
}

// Revenue carries the per-run terms derived from prices and contract:
// per-tonne metal prices, treatment charges, and secondary-metal
// payments. Build once per run with Terms.
type Revenue struct {
	s *Smelter

	ZnPricet float64 // $/t
	PbPricet float64
	AgPriceg float64 // $/g

	ZnTc float64 // $/t concentrate, net of byproduct and penalties
	PbTc float64
	BkTc float64

	znConcPayPb float64 // secondary payment in Zn concentrate, $/t
	pbConcPayZn float64
}

// Terms derives the per-run revenue terms.
func (s *Smelter) Terms(p Prices) *Revenue {
	r := &Revenue{
		s:        s,
		ZnPricet: p.Zn * 2204.62,
		PbPricet: p.Pb * 2204.62,
		AgPriceg: p.Ag / 31.10348,
	}
	r.ZnTc = treatmentCharge(s.ZnTcBase, s.ZnTcBasis, s.ZnBelowBasis, s.ZnAboveBasis, r.ZnPricet) -
		s.GePayment + s.SiPenalty + s.ZnFlatPenalty
	r.PbTc = treatmentCharge(s.PbTcBase, s.PbTcBasis, s.PbBelowBasis, s.PbAboveBasis, r.PbPricet) +
		s.PbFlatPenalty
	// Bulk concentrate settles at the average of the plain charges.
	znTcBk := treatmentCharge(s.ZnTcBase, s.ZnTcBasis, s.ZnBelowBasis, s.ZnAboveBasis, r.ZnPricet)
	pbTcBk := treatmentCharge(s.PbTcBase, s.PbTcBasis, s.PbBelowBasis, s.PbAboveBasis, r.PbPricet)
	r.BkTc = (znTcBk + pbTcBk) / 2
	r.znConcPayPb = r.PbPricet * s.ZnPayPb
	r.pbConcPayZn = r.ZnPricet * s.PbPayZn
	return r
}

// BkFreight is the bulk concentrate freight rate, $/dmt.
func (s *Smelter) BkFreight() float64 { return (s.ZnFreight + s.PbFreight) / 2 }

// BkSell is the bulk concentrate selling expense, $/dmt.
func (s *Smelter) BkSell() float64 { return (s.ZnSell + s.PbSell) / 2 }

// stream holds the contract terms of one single-metal concentrate.
type stream struct {
	pricet      float64
	pay, deduct float64
	paySecond   float64 // payment for the other metal carried, $/t conc
	tc          float64
	deductAg    float64
	payAg       float64
	refineAg    float64
	freight     float64
	selling     float64
	cgReduction float64
	leadAgRule  bool // payable Ag capped at grade less deduction
}

// single is the net revenue per tonne of mill feed for one single-metal
// concentrate. Grades and recovery are percentages; silver is g/t.
func (r *Revenue) single(s stream, gFeed, gConc, rConc, gConcAg float64) float64 {
	cgNet := gConc/100.0 - s.cgReduction
	if cgNet <= 0 {
		return 0
	}
	shipped := (gFeed * rConc) / 10000.0 / cgNet
	if shipped <= 0 {
		return 0
	}

	// Oxidation loss shrinks sold tonnage relative to produced, which
	// concentrates the silver and the dewatering charge.
	gConcAgNet := gConcAg
	dewatering := r.s.Dewatering
	if s.cgReduction > 0 {
		ps := cgNet / (gConc / 100.0)
		gConcAgNet = gConcAg * ps
		dewatering = r.s.Dewatering * ps
	}

	var agPay float64
	if gConcAgNet > s.deductAg {
		if s.leadAgRule {
			agPay = min(gConcAgNet-s.deductAg, gConcAgNet*s.payAg)
		} else {
			agPay = (gConcAgNet - s.deductAg) * s.payAg
		}
	}

	totalTc := s.tc + s.refineAg*agPay
	concPay := s.pricet * cgNet * min(s.pay, (cgNet-s.deduct)/cgNet)
	grossPay := concPay + r.AgPriceg*agPay + s.paySecond

	busIntrptIns := r.s.BII * (grossPay - totalTc)
	boroughTax := r.s.NWABTEff * (grossPay - totalTc - s.freight)
	netPay := grossPay - totalTc - s.freight - s.selling - busIntrptIns - boroughTax -
		dewatering - r.s.Portsite
	return netPay * shipped
}

// SulfideAMR is the combined zinc plus lead concentrate revenue per
// tonne of sulfide mill feed. Negative values are kept so that waste
// diluted to mill feed still carries its escalators.
func (r *Revenue) SulfideAMR(stZN, znGrd, znRec, aggZN, stPB, pbGrd, pbRec, aggPB float64) float64 {
	s := r.s
	zn := r.single(stream{
		pricet: r.ZnPricet, pay: s.ZnPayZn, deduct: s.ZnDeductZn,
		paySecond: r.znConcPayPb, tc: r.ZnTc,
		deductAg: s.ZnDeductAg, payAg: s.ZnPayAg, refineAg: s.ZnRefineAg,
		freight: s.ZnFreight, selling: s.ZnSell, cgReduction: s.ZnCGReduction,
	}, stZN, znGrd, znRec, aggZN)
	pb := r.single(stream{
		pricet: r.PbPricet, pay: s.PbPayPb, deduct: s.PbDeductPb,
		paySecond: r.pbConcPayZn, tc: r.PbTc,
		deductAg: s.PbDeductAg, payAg: s.PbPayAg, refineAg: s.PbRefineAg,
		freight: s.PbFreight, selling: s.PbSell, cgReduction: s.PbCGReduction,
		leadAgRule: true,
	}, stPB, pbGrd, pbRec, aggPB)
	return zn + pb
}

// OxideAMR is the oxide lead concentrate revenue per tonne of oxide
// mill feed. No secondary-metal payment applies.
func (r *Revenue) OxideAMR(stPB, pbGOX, pbROX, aggOX float64) float64 {
	s := r.s
	return r.single(stream{
		pricet: r.PbPricet, pay: s.PbPayPb, deduct: s.PbDeductPb,
		paySecond: 0, tc: r.PbTc,
		deductAg: s.PbDeductAg, payAg: s.PbPayAg, refineAg: s.PbRefineAg,
		freight: s.PbFreight, selling: s.PbSell, cgReduction: s.PbCGReduction,
		leadAgRule: true,
	}, stPB, pbGOX, pbROX, aggOX)
}

// BulkAMR is the weathered bulk concentrate revenue per tonne of mill
// feed. Shipped tonnage follows the zinc balance; lead pays on its
// grade in the same concentrate. No oxidation loss applies.
func (r *Revenue) BulkAMR(stZN, znGWX, znRWX, pbGWX, aggWX float64) float64 {
	s := r.s
	znCGNet := znGWX / 100.0
	pbCGNet := pbGWX / 100.0
	if znCGNet <= 0 {
		return 0
	}
	shipped := (stZN * znRWX) / 10000.0 / znCGNet
	if shipped <= 0 {
		return 0
	}

	var agPay float64
	if aggWX > s.BkDeductAg {
		agPay = (aggWX - s.BkDeductAg) * s.BkPayAg
	}
	totalTc := r.BkTc + s.PbRefineAg*agPay
	concPay := r.ZnPricet*znCGNet*min(s.ZnPayZn, (znCGNet-s.ZnDeductZn)/znCGNet) +
		r.PbPricet*pbCGNet*min(s.PbPayPb, (pbCGNet-s.PbDeductPb)/pbCGNet)
	grossPay := concPay + r.AgPriceg*agPay

	busIntrptIns := r.s.BII * (grossPay - totalTc)
	boroughTax := r.s.NWABTEff * (grossPay - totalTc - s.BkFreight())
	netPay := grossPay - totalTc - s.BkFreight() - s.BkSell() - busIntrptIns - boroughTax -
		s.Dewatering - s.Portsite
	return netPay * shipped
}
