package main

import "github.com/redmonkez12/advisory-cms/internal/offering"

func ptr[T any](v T) *T { return &v }

func defaultServices() []offering.Input {
	return []offering.Input{
		{
			Title:            ptr("Company Registration"),
			Slug:             ptr("company-registration"),
			ShortDescription: ptr("Register your business as Pvt Ltd, LLP, or OPC."),
			Description:      ptr(`# Company Registration Services

Starting a business is a significant milestone, and choosing the right business structure is crucial for your long-term success. At 89T Corporate Advisors, we provide comprehensive support for registering various types of business entities in India.

## Our Registration Services

### Private Limited Company (Pvt Ltd)
Most popular structure for startups and growing businesses.
- **Benefits:** Limited liability, separate legal entity, easy to raise funds.
- **Requirements:** Minimum 2 directors, 2 shareholders.

### Limited Liability Partnership (LLP)
Hybrid structure combining partnership flexibility with limited liability.
- **Benefits:** Lower compliance cost, limited liability protection.
- **Best for:** Professional firms, small businesses.

### One Person Company (OPC)
Perfect for solo entrepreneurs who want limited liability.
- **Benefits:** Single owner control, limited liability.
- **Requirements:** 1 Director/Shareholder (Resident Indian).

### Partnership Firm
Simple structure for small businesses run by partners.
- **Benefits:** Easy to form, minimal compliance.
- **Note:** Unlimited liability for partners.

## Why Choose Us?
- **Expert Guidance:** We help you choose the right structure.
- **Fast Processing:** Digital-first approach for quick incorporation.
- **Post-Registration Support:** We help with PAN, TAN, and Bank Account opening.`),
			Image:            ptr("https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?q=80&w=2070&auto=format&fit=crop"),
			Features:         ptr([]string{"Pvt Ltd Registration", "LLP Registration", "OPC Incorporation", "Partnership Deed Drafting"}),
			IsActive:         ptr(true),
			Order:            ptr(1),
		},
		{
			Title:            ptr("MCA Compliance"),
			Slug:             ptr("mca-compliance"),
			ShortDescription: ptr("Annual filings and ROC compliance management."),
			Description:      ptr(`# MCA & ROC Compliance

Maintaining compliance with the Ministry of Corporate Affairs (MCA) and Registrar of Companies (ROC) is mandatory for all registered companies and LLPs in India. Non-compliance can lead to heavy penalties and disqualification of directors.

## Essential Compliances We Handle

### Annual Filings
- **AOC-4:** Filing of Financial Statements.
- **MGT-7:** Filing of Annual Return.
- **Form 11 & Form 8:** For LLPs.

### Event-Based Compliances
- **Director Changes:** Appointing or resigning directors (DIR-12).
- **Office Address Change:** Shifting registered office (INC-22).
- **Capital Increase:** Increasing Authorized Capital (SH-7).

### KYC Compliances
- **DIR-3 KYC:** Annual KYC for all Director DIN holders.
- **Active Company Tagging:** Form INC-22A.

## Our Process
1. **Document Review:** We verify your records.
2. **Preparation:** We draft necessary resolutions and forms.
3. **Filing:** We upload forms to the MCA portal.
4. **Tracking:** We share the approval status and challans.`),
			Image:            ptr("https://images.unsplash.com/photo-1554224155-6726b3ff858f?q=80&w=2072&auto=format&fit=crop"),
			Features:         ptr([]string{"Annual Return Filing", "Director KYC", "Registered Office Change", "Share Transfer"}),
			IsActive:         ptr(true),
			Order:            ptr(2),
		},
		{
			Title:            ptr("GST Services"),
			Slug:             ptr("gst-services"),
			ShortDescription: ptr("GST registration, return filing, and advisory."),
			Description:      ptr(`# GST Services

The Goods and Services Tax (GST) is a comprehensive indirect tax on the manufacture, sale, and consumption of goods and services throughout India. We offer end-to-end GST solutions to ensure your business stays compliant.

## Our GST Offerings

### GST Registration
- Application for new GSTIN.
- Voluntary and Mandatory verification.
- Amendment of Core/Non-Core fields.

### Regular Return Filing
- **GSTR-1:** Monthly/Quarterly return of outward supplies.
- **GSTR-3B:** Monthly summary return and tax payment.
- **GSTR-9/9C:** Annual Return and Reconciliation Statement.

### Advisory & Reconciliation
- Input Tax Credit (ITC) reconciliation with GSTR-2B.
- GST Refund application processing.
- Reply to Show Cause Notices (SCN).
- LUT Filing for Exporters.

## Who Needs GST?
- Businesses with turnover above ₹20 Lakhs (Services) or ₹40 Lakhs (Goods).
- E-commerce sellers.
- Inter-state suppliers.`),
			Image:            ptr("https://images.unsplash.com/photo-1590283603385-17ffb3a7f29f?q=80&w=2070&auto=format&fit=crop"),
			Features:         ptr([]string{"GST Registration", "Monthly/Quarterly Filings", "GSTR-9 Annual Return", "LUT Filing"}),
			IsActive:         ptr(true),
			Order:            ptr(3),
		},
		{
			Title:            ptr("Income Tax Filing"),
			Slug:             ptr("income-tax-filing"),
			ShortDescription: ptr("ITR filing for individuals and businesses."),
			Description:      ptr(`# Income Tax Filing

Filing Income Tax Returns (ITR) is not just a legal obligation but also essential for financial credibility, loan approvals, and visa applications. We provide expert assisted tax filing services.

## Services for Different Taxpayers

### For Individuals (Salaried & Professional)
- **ITR-1 / ITR-4:** Simplified filing for salaried and small professionals.
- **ITR-2 / ITR-3:** For capital gains, house property, and business income.
- Tax planning to maximize deductions under 80C, 80D, etc.

### For Businesses (Corporate Tax)
- **ITR-6:** For Private Limited Companies.
- **ITR-5:** For LLPs and Firms.
- Tax Audit Report filing (Form 3CA/3CB and 3CD).

### TDS Compliance
- Monthly TDS payment value calculation.
- Quarterly TDS Return Filing (24Q, 26Q).
- Generation of Form 16/16A.

## Why File on Time?
1. Avoid penalties and interest.
2. Carry forward losses to future years.
3. Quick refund processing.`),
			Image:            ptr("https://images.unsplash.com/photo-1586486855514-8c633cc6fd38?q=80&w=2070&auto=format&fit=crop"),
			Features:         ptr([]string{"ITR Filing (Business/Individual)", "Tax Audit Support", "TDS Return Filing", "Tax Planning"}),
			IsActive:         ptr(true),
			Order:            ptr(4),
		},
	}
}
