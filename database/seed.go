package database

import (
	"time"

	"github.com/digitalaadhti/digital-aadhti-official/models"
)

func strPtr(s string) *string {
	return &s
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// SamplePosts returns the posts a fresh installation starts with.
func SamplePosts() []models.Post {
	return []models.Post{
		{
			ID:       "1",
			Title:    "Digital Transformation in Agricultural Markets",
			Subtitle: strPtr("How technology is revolutionizing grain trading and commission management"),
			Content: `# Digital Transformation in Agricultural Markets

The agricultural sector is experiencing a digital revolution that's transforming how grain markets operate, from commission calculations to broker management systems.

## The Evolution of Agricultural Technology

Traditional paper-based systems are giving way to sophisticated digital platforms that streamline operations, improve accuracy, and provide real-time insights into market trends.

> "Digital Aadhti represents the future of agricultural market management - where technology meets tradition to create more efficient and transparent trading processes."

## Key Benefits of Digital Market Systems

Modern agricultural market platforms offer several advantages:

- **Automated Commission Calculations:** Eliminate manual errors and speed up processing
- **Real-time Market Data:** Access to current prices and trends
- **Transparent Transactions:** Complete audit trails for all operations
- **Efficient Broker Management:** Streamlined processes for market intermediaries

## The Digital Aadhti Advantage

Our platform combines traditional market knowledge with cutting-edge technology to provide:

### Advanced Commission Management
- Automated calculation systems
- Customizable rate structures
- Real-time reporting and analytics

### Market Intelligence
- Price trend analysis
- Historical data insights
- Predictive market modeling

The future of agricultural markets lies in embracing digital transformation while preserving the essential human relationships that drive successful trading.`,
			Excerpt:       "Discover how Digital Aadhti is transforming agricultural markets through innovative technology that streamlines commission calculations and broker management.",
			Category:      "Technology",
			FeaturedImage: strPtr("https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
			CreatedAt:     day(2024, time.March, 15),
			UpdatedAt:     day(2024, time.March, 15),
		},
		{
			ID:       "2",
			Title:    "Understanding Commission Structures in Grain Markets",
			Subtitle: strPtr("A comprehensive guide to commission calculations for brokers and aadhtis"),
			Content: `# Understanding Commission Structures in Grain Markets

Commission management is at the heart of successful grain market operations. Understanding different commission structures and calculation methods is crucial for brokers and aadhtis.

## Types of Commission Structures

### Fixed Rate Commissions
A predetermined amount per unit of grain traded, regardless of market price fluctuations.

### Percentage-Based Commissions
Calculated as a percentage of the total transaction value, providing flexibility with market conditions.

### Tiered Commission Systems
Different rates based on volume tiers, encouraging larger transactions with reduced rates for high-volume traders.

## Digital Aadhti's Commission Management Features

### Automated Calculations
Our system automatically calculates commissions based on your configured rates and transaction details.

### Flexible Rate Structures
- Support for multiple commission types
- Custom rate configurations per client
- Seasonal rate adjustments
- Volume-based incentive programs

### Comprehensive Reporting
- Real-time commission tracking
- Detailed transaction reports
- Performance analytics
- Tax-ready documentation

## Best Practices for Commission Management

1. **Transparency:** Always clearly communicate commission structures to clients
2. **Consistency:** Apply rates fairly across similar transactions
3. **Documentation:** Maintain detailed records for all commission calculations
4. **Regular Review:** Periodically assess and adjust rates based on market conditions

Digital Aadhti simplifies these processes, ensuring accuracy and transparency in all your commission calculations.`,
			Excerpt:       "Learn about different commission structures in grain markets and how Digital Aadhti simplifies commission calculations for brokers and market intermediaries.",
			Category:      "Business",
			FeaturedImage: strPtr("https://images.unsplash.com/photo-1554224155-6726b3ff858f?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
			CreatedAt:     day(2024, time.March, 12),
			UpdatedAt:     day(2024, time.March, 12),
		},
		{
			ID:       "3",
			Title:    "Market Analytics and Reporting Tools",
			Subtitle: strPtr("Leveraging data insights for better grain market decisions"),
			Content: `# Market Analytics and Reporting Tools

Data-driven decision making is essential in today's competitive grain markets. Digital Aadhti provides comprehensive analytics and reporting tools to give you the insights you need.

## Real-Time Market Intelligence

### Price Trend Analysis
Track price movements across different grain varieties and identify market patterns.

### Volume Analytics
Monitor trading volumes to understand market activity and identify opportunities.

### Seasonal Patterns
Analyze historical data to predict seasonal trends and plan your trading strategies accordingly.

## Advanced Reporting Features

### Commission Reports
- Detailed commission breakdowns by client
- Period-over-period comparisons
- Performance metrics and KPIs

### Transaction Analytics
- Complete transaction histories
- Client behavior analysis
- Market share insights

### Financial Dashboards
- Real-time revenue tracking
- Profit margin analysis
- Cash flow projections

## Custom Report Builder

Create custom reports tailored to your specific needs:

1. **Flexible Filters:** Filter by date range, client, grain type, or custom criteria
2. **Multiple Formats:** Export reports in PDF, Excel, or CSV formats
3. **Scheduled Reports:** Automatically generate and email reports on a schedule
4. **Interactive Charts:** Visualize data with dynamic charts and graphs

## Benefits of Data-Driven Operations

- **Improved Decision Making:** Base decisions on concrete data rather than intuition
- **Risk Management:** Identify potential risks before they impact your business
- **Client Insights:** Better understand client needs and preferences
- **Operational Efficiency:** Optimize processes based on performance data

Digital Aadhti's analytics suite transforms raw transaction data into actionable business intelligence.`,
			Excerpt:       "Explore Digital Aadhti's powerful analytics and reporting tools that transform market data into actionable insights for grain market professionals.",
			Category:      "Analytics",
			FeaturedImage: strPtr("https://images.unsplash.com/photo-1551288049-bebda4e38f71?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
			CreatedAt:     day(2024, time.March, 10),
			UpdatedAt:     day(2024, time.March, 10),
		},
	}
}

// SampleComments returns the comments attached to SamplePosts.
func SampleComments() []models.Comment {
	return []models.Comment{
		{
			ID:        "1",
			PostID:    "1",
			Author:    "Raj Patel",
			Email:     "raj@grainmarket.com",
			Content:   "Excellent overview of digital transformation in agriculture! We've been using Digital Aadhti for our commission management and the automation has saved us countless hours.",
			CreatedAt: time.Date(2024, time.March, 16, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "2",
			PostID:    "1",
			Author:    "Priya Sharma",
			Email:     "priya@agritech.in",
			Content:   "As someone who's worked in traditional markets for years, I can attest to how much technology has improved our operations.",
			CreatedAt: time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:        "3",
			PostID:    "2",
			Author:    "Suresh Kumar",
			Email:     "suresh@marketbroker.com",
			Content:   "The commission calculation features are incredibly helpful. The transparency and accuracy it provides has improved our client relationships significantly.",
			CreatedAt: time.Date(2024, time.March, 13, 9, 15, 0, 0, time.UTC),
		},
	}
}
